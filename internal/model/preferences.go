package model

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) IsValid() bool {
	switch t {
	case ThemeDark, ThemeLight:
		return true
	default:
		return false
	}
}

type Preferences struct {
	Theme     Theme  `json:"theme"`
	OwnerName string `json:"owner_name"`
}

func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeDark}
}
