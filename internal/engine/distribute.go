package engine

import "github.com/piwi3910/pcbpanel/internal/geom"

// ScoreDistributeTabs hands out count tabs over ranges and returns the number
// of tabs per range. Each tab goes to the range with the highest score, ties
// going to the earliest range. A range's score starts at its length and
// becomes (length - n*tabWidth) / (n+1) once it holds n tabs, which is the
// spacing left around each tab if one more were added.
//
// With no ranges the result is empty and no tabs are placed.
func ScoreDistributeTabs(ranges []geom.Range, count int, tabWidth geom.Length) []int {
	counts := make([]int, len(ranges))
	if len(ranges) == 0 {
		return counts
	}

	scores := make([]float64, len(ranges))
	for i, r := range ranges {
		scores[i] = float64(r.Len())
	}

	for t := 0; t < count; t++ {
		best := 0
		for i := 1; i < len(scores); i++ {
			if scores[i] > scores[best] {
				best = i
			}
		}
		counts[best]++
		n := float64(counts[best])
		scores[best] = (float64(ranges[best].Len()) - n*float64(tabWidth)) / (n + 1)
	}
	return counts
}
