package api

import "fmt"

// Histogram maps non-negative buckets to occurrence counts. Buckets are
// stored densely, so iteration covers every bucket from 0 to Len()-1
// including those with a zero count.
type Histogram struct {
	buckets []uint64
	total   uint64
}

// NewHistogram creates a histogram with buckets 0..size-1 set to zero.
func NewHistogram(size int) *Histogram {
	if size < 0 {
		size = 0
	}
	return &Histogram{buckets: make([]uint64, size)}
}

// HistogramOf creates a histogram from dense counts, index i being bucket i.
func HistogramOf(counts ...uint64) *Histogram {
	h := &Histogram{buckets: make([]uint64, len(counts))}
	for i, c := range counts {
		h.buckets[i] = c
		h.total += c
	}
	return h
}

// Add increments bucket by n, growing the range when needed.
func (h *Histogram) Add(bucket int, n uint64) {
	if bucket < 0 {
		panic(fmt.Sprintf("negative histogram bucket %d", bucket))
	}
	if bucket >= len(h.buckets) {
		h.buckets = append(h.buckets, make([]uint64, bucket-len(h.buckets)+1)...)
	}
	h.buckets[bucket] += n
	h.total += n
}

func (h *Histogram) Count(bucket int) uint64 {
	if bucket < 0 || bucket >= len(h.buckets) {
		return 0
	}
	return h.buckets[bucket]
}

// Len returns the size of the dense bucket range.
func (h *Histogram) Len() int {
	return len(h.buckets)
}

// Total returns the sum of all counts. It is maintained on every Add.
func (h *Histogram) Total() uint64 {
	return h.total
}

// Each calls fn for every bucket in ascending order, zero buckets included.
func (h *Histogram) Each(fn func(bucket int, count uint64)) {
	for i, c := range h.buckets {
		fn(i, c)
	}
}

// Counts returns a copy of the dense counts.
func (h *Histogram) Counts() []uint64 {
	counts := make([]uint64, len(h.buckets))
	copy(counts, h.buckets)
	return counts
}
