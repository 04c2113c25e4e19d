package model

import (
	"errors"
	"strings"
)

// Note is a saved snippet together with the rendered snapshot taken when
// it was last saved. Rendered is regenerated on every edit of Source.
type Note struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Rendered string `json:"rendered"`
}

func (n Note) Validate() error {
	if strings.TrimSpace(n.ID) == "" {
		return errors.New("model: note id is required")
	}
	if strings.TrimSpace(n.Source) == "" {
		return errors.New("model: note source is required")
	}
	return nil
}
