package session

import (
	"fmt"
	"strings"
)

// Mode selects how the input is decoded.
type Mode int

const (
	// ModeJSON parses the input as a JSON document.
	ModeJSON Mode = iota
	// ModeJWT decodes the input as a compact JWT first.
	ModeJWT
)

func (m Mode) String() string {
	if m == ModeJWT {
		return "jwt"
	}
	return "json"
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeJWT {
		return ModeJSON
	}
	return ModeJWT
}

// ParseMode reads a mode name; empty means JSON.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return ModeJSON, nil
	case "jwt":
		return ModeJWT, nil
	default:
		return ModeJSON, fmt.Errorf("unknown mode %q (want json or jwt)", s)
	}
}
