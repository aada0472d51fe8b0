// Package stats computes population level statistics of a product line. All
// statistics are defined for empty populations and never divide by zero.
package stats

import (
	"github.com/rmohr/plstats/pkg/api"
)

// FeatureInclusionFrequency counts for every feature of the population in how
// many configurations it is selected.
func FeatureInclusionFrequency(p *api.Population) map[string]uint64 {
	frequency := make(map[string]uint64, len(p.Features()))
	for _, f := range p.Features() {
		frequency[f] = 0
	}
	for _, c := range p.Configurations() {
		for _, f := range c.Selected() {
			frequency[f]++
		}
	}
	return frequency
}

// FeatureInclusionProbability divides the inclusion frequency by the size of
// the population. An empty population yields an all-zero mapping.
func FeatureInclusionProbability(p *api.Population) map[string]float64 {
	frequency := FeatureInclusionFrequency(p)
	probability := make(map[string]float64, len(frequency))
	n := p.Len()
	for f, count := range frequency {
		if n == 0 {
			probability[f] = 0
			continue
		}
		probability[f] = float64(count) / float64(n)
	}
	return probability
}

// ProductDistribution maps the number of selected features to the number of
// configurations with that many selections. Buckets range densely from 0 to
// the number of features of the population.
func ProductDistribution(p *api.Population) *api.Histogram {
	h := api.NewHistogram(len(p.Features()) + 1)
	for _, c := range p.Configurations() {
		h.Add(c.SelectedCount(), 1)
	}
	return h
}

// InclusionDistribution maps an inclusion frequency to the number of
// features selected that often. Buckets range densely from 0 to the size of
// the population.
func InclusionDistribution(p *api.Population) *api.Histogram {
	h := api.NewHistogram(p.Len() + 1)
	for _, count := range FeatureInclusionFrequency(p) {
		h.Add(int(count), 1)
	}
	return h
}
