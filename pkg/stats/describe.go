package stats

import (
	"math"

	"github.com/rmohr/plstats/pkg/api"
)

// NoData is reported as Min and Max of an empty histogram.
const NoData = -1

// Summary holds the descriptive statistics of a histogram, treating every
// occurrence of bucket i as one observation of value i.
type Summary struct {
	Total                   uint64  `json:"total"`
	Mean                    float64 `json:"mean"`
	StandardDeviation       float64 `json:"standardDeviation"`
	Median                  float64 `json:"median"`
	MedianAbsoluteDeviation float64 `json:"medianAbsoluteDeviation"`
	Mode                    int     `json:"mode"`
	Min                     int     `json:"min"`
	Max                     int     `json:"max"`
	Range                   int     `json:"range"`
}

// Describe computes the summary in two passes over the buckets, independent
// of the number of observations. The first pass finds the extremes, the mode,
// the mean and the median by cumulative rank. The second pass walks outwards
// from the median, visiting absolute deviations in ascending order, which
// yields the variance and the median absolute deviation at once.
func Describe(h *api.Histogram) Summary {
	s := Summary{Min: NoData, Max: NoData, Total: h.Total()}
	n := s.Total
	if n == 0 {
		return s
	}
	// ⌈N/2⌉ and ⌈(N+1)/2⌉, equal for odd N
	lowRank, highRank := (n+1)/2, n/2+1

	var sum float64
	var running, modeCount uint64
	lowMedian, highMedian := NoData, NoData
	h.Each(func(i int, count uint64) {
		if count == 0 {
			return
		}
		if s.Min == NoData {
			s.Min = i
		}
		s.Max = i
		if count > modeCount {
			s.Mode, modeCount = i, count
		}
		sum += float64(i) * float64(count)
		running += count
		if lowMedian == NoData && running >= lowRank {
			lowMedian = i
		}
		if highMedian == NoData && running >= highRank {
			highMedian = i
		}
	})
	s.Range = s.Max - s.Min
	s.Mean = sum / float64(n)
	s.Median = float64(lowMedian+highMedian) / 2

	var squares float64
	running = 0
	lowDeviation, highDeviation := -1.0, -1.0
	left, right := int(math.Floor(s.Median)), int(math.Floor(s.Median))+1
	for left >= s.Min || right <= s.Max {
		var i int
		var deviation float64
		if right > s.Max || (left >= s.Min && s.Median-float64(left) <= float64(right)-s.Median) {
			i, deviation = left, s.Median-float64(left)
			left--
		} else {
			i, deviation = right, float64(right)-s.Median
			right++
		}
		count := h.Count(i)
		if count == 0 {
			continue
		}
		d := float64(i) - s.Mean
		squares += float64(count) * d * d
		running += count
		if lowDeviation < 0 && running >= lowRank {
			lowDeviation = deviation
		}
		if highDeviation < 0 && running >= highRank {
			highDeviation = deviation
		}
	}
	s.StandardDeviation = math.Sqrt(squares / float64(n))
	s.MedianAbsoluteDeviation = (lowDeviation + highDeviation) / 2
	return s
}
