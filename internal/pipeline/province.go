package pipeline

// province.go - province derivation for silver programs

import (
	"strings"

	"github.com/carmsdata/carmsdw/pkg/core"
)

// schoolProvinces maps normalized school names to province codes for
// programs whose site string carries no usable region token. Keys must
// stay in NormalizeText form.
var schoolProvinces = map[string]string{
	"dalhousie university":                "NS",
	"mcgill university":                   "QC",
	"mcmaster university":                 "ON",
	"memorial university of newfoundland": "NL",
	"nosm university":                     "ON",
	"queen's university":                  "ON",
	"queens university":                   "ON",
	"toronto metropolitan university":     "ON",
	"university of alberta":               "AB",
	"university of british columbia":      "BC",
	"university of calgary":               "AB",
	"university of manitoba":              "MB",
	"university of ottawa":                "ON",
	"university of saskatchewan":          "SK",
	"university of toronto":               "ON",
	"universite laval":                    "QC",
	"universite de montreal":              "QC",
	"universite de sherbrooke":            "QC",
	"western university":                  "ON",
}

// ParseProvince scans the comma/semicolon-separated site string from the
// end and returns the first token that is a known province code. Site
// strings usually end with a region token ("..., Halifax, NS"). Returns
// "" when no token matches.
func ParseProvince(site string) string {
	if site == "" {
		return ""
	}
	tokens := strings.FieldsFunc(site, func(r rune) bool {
		return r == ',' || r == ';'
	})
	for i := len(tokens) - 1; i >= 0; i-- {
		candidate := strings.ToUpper(strings.TrimSpace(tokens[i]))
		if len(candidate) != 2 && len(candidate) != 3 {
			continue
		}
		if _, ok := core.ProvinceCodes[candidate]; ok {
			return candidate
		}
	}
	return ""
}

// ResolveProvince derives a province code for a program: site string
// first, then the school lookup table, else UnknownProvince. It never
// returns an empty string.
func ResolveProvince(site, schoolName string) string {
	if p := ParseProvince(site); p != "" {
		return p
	}
	if p, ok := schoolProvinces[NormalizeText(schoolName)]; ok {
		return p
	}
	return core.UnknownProvince
}
