package parallel

// Strip is a half-open range of rows [Start, End).
type Strip struct {
	Start, End int
}

// Len returns the number of rows in the strip.
func (s Strip) Len() int {
	return s.End - s.Start
}

// Strips splits rows [0, total) into at most n contiguous, disjoint strips.
// Every strip but the last has ceil(total/n) rows; the last one ends at total.
// Empty strips are omitted, so fewer than n strips may be returned.
func Strips(total, n int) []Strip {
	if total <= 0 {
		return nil
	}
	if n <= 0 {
		n = 1
	}

	h := (total + n - 1) / n
	strips := make([]Strip, 0, n)
	for i := range n {
		start := i * h
		if start >= total {
			break
		}
		end := start + h
		if i == n-1 || end > total {
			end = total
		}
		strips = append(strips, Strip{Start: start, End: end})
	}
	return strips
}
