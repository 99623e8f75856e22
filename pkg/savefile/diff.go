package savefile

import "fmt"

// Range is a half-open byte range [Start, End).
type Range struct {
	Start int
	End   int
}

func (r Range) String() string {
	return fmt.Sprintf("[%#x, %#x)", r.Start, r.End)
}

// Diff returns the ranges where a and b differ. When the lengths differ the
// tail of the longer slice is one final range.
func Diff(a, b []byte) []Range {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var out []Range
	start := -1
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, Range{Start: start, End: i})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, Range{Start: start, End: n})
	}

	if long := max(len(a), len(b)); long > n {
		if len(out) > 0 && out[len(out)-1].End == n {
			out[len(out)-1].End = long
		} else {
			out = append(out, Range{Start: n, End: long})
		}
	}
	return out
}
