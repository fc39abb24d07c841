package geom

import "sort"

// Range is a closed span [Low, High] along one axis.
type Range struct {
	Low  Length `json:"low"`
	High Length `json:"high"`
}

func (r Range) Len() Length { return r.High - r.Low }

// MergeRanges sorts ranges by Low and joins any that overlap or touch.
// The input slice is not modified.
func MergeRanges(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}
	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Low != sorted[j].Low {
			return sorted[i].Low < sorted[j].Low
		}
		return sorted[i].High < sorted[j].High
	})

	merged := []Range{sorted[0]}
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if r.Low <= last.High {
			last.High = maxLength(last.High, r.High)
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
