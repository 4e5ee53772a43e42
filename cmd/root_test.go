package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		name   string
		minor  bool
		want   string
		notice bool
	}{
		{"a", false, "A Maj", false},
		{"a", true, "A min", false},
		{"Eb", true, "Eb min", false},
		{"f#", false, "F# Maj", false},
		{"H", false, "C Maj", true},
		{"", false, "C Maj", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			k := parseKey(&out, tt.name, tt.minor)
			assert.Equal(t, tt.want, k.String())
			if tt.notice {
				assert.Contains(t, out.String(), "not valid, using C Major instead.")
			} else {
				assert.Empty(t, out.String())
			}
		})
	}
}
