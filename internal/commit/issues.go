package commit

import (
	"slices"
	"strconv"
	"strings"
)

// appendIssues appends every `#<digits>` reference in s to dst.
// Runs too long for a uint64 are skipped.
func appendIssues(dst []uint64, s string) []uint64 {
	for {
		i := strings.IndexByte(s, '#')
		if i < 0 {
			return dst
		}
		s = s[i+1:]

		n := 0
		for n < len(s) && isDigit(s[n]) {
			n++
		}
		if n == 0 {
			continue
		}
		if v, err := strconv.ParseUint(s[:n], 10, 64); err == nil {
			dst = append(dst, v)
		}
		s = s[n:]
	}
}

// normalizeIssues returns a sorted, deduplicated copy of issues, or nil.
func normalizeIssues(issues []uint64) []uint64 {
	if len(issues) == 0 {
		return nil
	}
	out := slices.Clone(issues)
	slices.Sort(out)
	return slices.Compact(out)
}

// ExtractIssues returns the sorted, deduplicated issue numbers referenced
// as `#<digits>` in text.
func ExtractIssues(text string) []uint64 {
	return normalizeIssues(appendIssues(nil, text))
}
