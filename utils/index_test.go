package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDigits(t *testing.T) {
	cases := []struct {
		name string
		s    string
		n    int
		want bool
	}{
		{"valid phone", "9876543210", 10, true},
		{"valid bank ref", "12345", 5, true},
		{"too short", "987654321", 10, false},
		{"too long", "98765432100", 10, false},
		{"letters", "987654321a", 10, false},
		{"spaces", "9876 43210", 10, false},
		{"empty", "", 10, false},
		{"unicode digits rejected", "９８７６５４３２１０", 10, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsDigits(tc.s, tc.n))
		})
	}
}
