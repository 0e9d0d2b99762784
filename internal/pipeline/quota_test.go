package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuota(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  *int64 // nil means unknown
	}{
		{
			name:  "plain number",
			label: "2025 R-1 Main Residency Match - Approximate Quota: 5",
			want:  int64p(5),
		},
		{
			name:  "range resolves to lower bound",
			label: "Approximate Quota: 5 - 10",
			want:  int64p(5),
		},
		{
			name:  "compact range",
			label: "Approximate Quota: 3-4",
			want:  int64p(3),
		},
		{
			name:  "variable sentinel",
			label: "Approximate Quota: Variable",
			want:  nil,
		},
		{
			name:  "case insensitive prefix",
			label: "approximate quota: 12",
			want:  int64p(12),
		},
		{
			name:  "no quota marker",
			label: "2025 R-1 Main Residency Match",
			want:  nil,
		},
		{
			name:  "empty label",
			label: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQuota(tt.label)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func int64p(v int64) *int64 { return &v }
