package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "lowercases and trims",
			input: "  Dalhousie University  ",
			want:  "dalhousie university",
		},
		{
			name:  "strips accents",
			input: "Université de Montréal",
			want:  "universite de montreal",
		},
		{
			name:  "drops curly apostrophe",
			input: "Queen’s University",
			want:  "queens university",
		},
		{
			name:  "normalizes backtick",
			input: "Queen`s University",
			want:  "queen's university",
		},
		{
			name:  "collapses interior whitespace",
			input: "McGill \t University\n",
			want:  "mcgill university",
		},
		{
			name:  "drops non-ascii remnants",
			input: "Laval\u2014Quebec",
			want:  "lavalquebec",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.input))
		})
	}
}
