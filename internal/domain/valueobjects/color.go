package valueobjects

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidColor = errors.New("invalid hex color format")
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

// HexColor é um value object que garante que cores de avatar
// sejam sempre strings hexadecimais válidas (#rrggbb)
type HexColor struct {
	value string
}

// NewHexColor cria um novo HexColor validado
func NewHexColor(color string) (HexColor, error) {
	color = strings.TrimSpace(strings.ToLower(color))

	if !hexColorPattern.MatchString(color) {
		return HexColor{}, ErrInvalidColor
	}

	return HexColor{value: color}, nil
}

// String retorna o valor da cor
func (c HexColor) String() string {
	return c.value
}
