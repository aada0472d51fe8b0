// Package enumerate lists the full configurations which extend a partial
// configuration, skipping the branches of variation points which are already
// decided.
package enumerate

import (
	"github.com/rmohr/plstats/pkg/api"
	"github.com/rmohr/plstats/pkg/featuremodel"
	"github.com/rmohr/plstats/pkg/reducer"
	"github.com/rmohr/plstats/pkg/sat"
	"github.com/sirupsen/logrus"
)

type Enumerator struct {
	oracle sat.Oracle
}

func NewEnumerator(oracle sat.Oracle) *Enumerator {
	return &Enumerator{oracle: oracle}
}

// Iterate returns a lazy iterator over the full extensions of partial. At
// most limit configurations are produced, zero meaning all of them.
func (e *Enumerator) Iterate(h featuremodel.Hierarchy, partial api.Configuration, limit int) (*Iterator, error) {
	reduction, err := reducer.Reduce(h, e.oracle, partial)
	if err != nil {
		return nil, err
	}
	models, err := e.oracle.Enumerate(reduction.Assumptions, limit)
	if err != nil {
		return nil, err
	}
	return &Iterator{
		models:   models,
		problem:  h.Problem(),
		features: h.Features(),
	}, nil
}

// All drains the iterator into a population.
func (e *Enumerator) All(h featuremodel.Hierarchy, partial api.Configuration, limit int) (*api.Population, error) {
	it, err := e.Iterate(h, partial, limit)
	if err != nil {
		return nil, err
	}
	defer it.Close()
	var configurations []api.Configuration
	for it.Next() {
		configurations = append(configurations, it.Configuration())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	logrus.Infof("Enumerated %d full configurations.", len(configurations))
	return api.NewPopulation(configurations...), nil
}

// Iterator yields full configurations in the order the oracle finds them.
// It can't be restarted once consumed. Callers which stop before Next
// returns false should Close it.
type Iterator struct {
	models   sat.ModelIterator
	problem  *sat.Problem
	features []string
	current  api.Configuration
}

func (it *Iterator) Next() bool {
	if !it.models.Next() {
		it.current = api.Configuration{}
		return false
	}
	elements := make(map[string]bool, len(it.features))
	for _, name := range it.features {
		elements[name] = false
	}
	for _, lit := range it.models.Model() {
		if lit.Positive() {
			elements[it.problem.Name(lit.Var())] = true
		}
	}
	it.current = api.NewConfiguration(elements)
	return true
}

func (it *Iterator) Configuration() api.Configuration {
	return it.current
}

func (it *Iterator) Err() error {
	return it.models.Err()
}

// Close stops the enumeration and releases the underlying solver.
func (it *Iterator) Close() {
	it.models.Close()
	it.current = api.Configuration{}
}
