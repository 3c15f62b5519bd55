// Package hero holds the Hero record and the ordered roster views display.
package hero

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBlankName is returned when a hero name is empty after trimming.
var ErrBlankName = errors.New("hero name is blank")

// Hero is identified by its server-assigned ID. Updates replace the whole record.
type Hero struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name" validate:"required,max=64"`
}

func (h Hero) String() string {
	return fmt.Sprintf("%d %s", h.ID, h.Name)
}

// NormalizeName trims surrounding whitespace and rejects blank names.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrBlankName
	}
	return name, nil
}
