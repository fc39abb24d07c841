package engine

import "github.com/piwi3910/pcbpanel/internal/geom"

// FindOverlappingRanges intersects two lists of ranges, each sorted by Low,
// and returns the sub-ranges covered by both. For a pair of opposite board
// edges this is where both edges follow the bounding box at the same time.
//
// The lists are consumed as queues from the front: the two head ranges are
// intersected; an empty intersection discards whichever head ends first,
// otherwise the overlap is recorded and the unconsumed tails are put back.
func FindOverlappingRanges(a, b []geom.Range) []geom.Range {
	qa := append([]geom.Range(nil), a...)
	qb := append([]geom.Range(nil), b...)

	var result []geom.Range
	for len(qa) > 0 && len(qb) > 0 {
		ra, rb := qa[0], qb[0]
		qa, qb = qa[1:], qb[1:]

		low := max(ra.Low, rb.Low)
		high := min(ra.High, rb.High)

		if high <= low {
			// No overlap: the range that ends first cannot match anything else
			if ra.High <= rb.High {
				qb = append([]geom.Range{rb}, qb...)
			} else {
				qa = append([]geom.Range{ra}, qa...)
			}
			continue
		}

		result = append(result, geom.Range{Low: low, High: high})
		if ra.High > high {
			qa = append([]geom.Range{{Low: high, High: ra.High}}, qa...)
		}
		if rb.High > high {
			qb = append([]geom.Range{{Low: high, High: rb.High}}, qb...)
		}
	}
	return result
}

// FilterRanges drops ranges shorter than minLen.
func FilterRanges(ranges []geom.Range, minLen geom.Length) []geom.Range {
	var out []geom.Range
	for _, r := range ranges {
		if r.Len() >= minLen {
			out = append(out, r)
		}
	}
	return out
}
