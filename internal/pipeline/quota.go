package pipeline

// quota.go - quota extraction from match iteration labels

import (
	"regexp"
	"strconv"
	"strings"
)

var quotaRe = regexp.MustCompile(`(?i)Approximate Quota:\s*(\d+(?:\s*-\s*\d+)?|Variable)`)

// ParseQuota extracts a numeric quota from a free-text iteration label.
// Ranges ("5 - 10") resolve to the lower bound; the "Variable" sentinel
// and unmatched labels resolve to nil (unknown, not zero).
func ParseQuota(label string) *int64 {
	if label == "" {
		return nil
	}
	m := quotaRe.FindStringSubmatch(label)
	if m == nil {
		return nil
	}

	value := strings.TrimSpace(m[1])
	if strings.EqualFold(value, "variable") {
		return nil
	}
	if i := strings.Index(value, "-"); i >= 0 {
		value = strings.TrimSpace(value[:i])
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
