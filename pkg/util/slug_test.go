package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Simple name",
			input: "Floor Mat",
			want:  "floor-mat",
		},
		{
			name:  "Special characters collapse",
			input: "LED Light Bar (12V) -- 40\"",
			want:  "led-light-bar-12v-40",
		},
		{
			name:  "Leading and trailing junk trimmed",
			input: "  ***Dash Cam***  ",
			want:  "dash-cam",
		},
		{
			name:  "Digits preserved",
			input: "Oil Filter 2018",
			want:  "oil-filter-2018",
		},
		{
			name:  "Empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}
