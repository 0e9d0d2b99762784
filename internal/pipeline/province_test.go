package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carmsdata/carmsdw/pkg/core"
)

func TestParseProvince(t *testing.T) {
	tests := []struct {
		name string
		site string
		want string
	}{
		{
			name: "code at end",
			site: "123 Main St, Toronto, ON",
			want: "ON",
		},
		{
			name: "lowercase code",
			site: "QEII Health Sciences Centre, Halifax, ns",
			want: "NS",
		},
		{
			name: "semicolon separators",
			site: "Foothills Medical Centre; Calgary; AB",
			want: "AB",
		},
		{
			name: "code not in final token",
			site: "Hopital Maisonneuve-Rosemont, QC, Pavillon J.A. DeSeve",
			want: "QC",
		},
		{
			name: "three letter territory",
			site: "Whitehorse General Hospital, Whitehorse, YT",
			want: "YT",
		},
		{
			name: "trailing city only",
			site: "St. Michael's Hospital, Toronto",
			want: "",
		},
		{
			name: "long tokens never match",
			site: "Ontario Shores Centre, Ontario",
			want: "",
		},
		{
			name: "empty site",
			site: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseProvince(tt.site))
		})
	}
}

func TestResolveProvince(t *testing.T) {
	tests := []struct {
		name   string
		site   string
		school string
		want   string
	}{
		{
			name:   "site wins over school",
			site:   "Vancouver General Hospital, Vancouver, BC",
			school: "University of Toronto",
			want:   "BC",
		},
		{
			name:   "school fallback",
			site:   "QEII Health Sciences Centre, Halifax",
			school: "Dalhousie University",
			want:   "NS",
		},
		{
			name:   "school fallback is accent insensitive",
			site:   "",
			school: "Université Laval",
			want:   "QC",
		},
		{
			name:   "unknown school",
			site:   "",
			school: "University of Nowhere",
			want:   core.UnknownProvince,
		},
		{
			name:   "both empty",
			site:   "",
			school: "",
			want:   core.UnknownProvince,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveProvince(tt.site, tt.school))
		})
	}
}
