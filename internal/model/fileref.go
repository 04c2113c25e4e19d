package model

import (
	"errors"
	"strings"
)

// FileRef points at a document the OS already stores. The app owns the
// reference, not the bytes.
type FileRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

func (f FileRef) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return errors.New("model: file ref id is required")
	}
	if strings.TrimSpace(f.Name) == "" {
		return errors.New("model: file ref name is required")
	}
	if strings.TrimSpace(f.URI) == "" {
		return errors.New("model: file ref uri is required")
	}
	return nil
}
