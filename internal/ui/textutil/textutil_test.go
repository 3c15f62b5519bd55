package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"fits", "Narco", 10, "Narco"},
		{"exact", "Narco", 5, "Narco"},
		{"cut", "Dr. IQ the Magnificent", 8, "Dr. IQ …"},
		{"zero", "Narco", 0, ""},
		{"wide runes", "名前名前", 5, "名前…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, Width(got), max(tt.limit, 0))
		})
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, "Bombasto  ", PadRight("Bombasto", 10))
	assert.Equal(t, "  12", PadLeft("12", 4))
	assert.Equal(t, "Mag…", PadRight("Magneta", 4))
	assert.Equal(t, "", PadRight("x", -1))
}
