package featuremodel

import (
	"github.com/rmohr/plstats/pkg/sat"
	"github.com/sirupsen/logrus"
)

// Summary describes the shape of a model and the size of its product space.
type Summary struct {
	Name        string                 `json:"name"`
	Root        string                 `json:"root"`
	Features    int                    `json:"features"`
	Constraints map[ConstraintKind]int `json:"constraints"`
	Groups      map[Cardinality]int    `json:"groups"`

	// Core features are selected in every product, dead features in none.
	Core     []string `json:"core"`
	Dead     []string `json:"dead"`
	Products int      `json:"products"`
}

// Summarize binds the oracle to the model if needed and counts its products.
func Summarize(m *Model, oracle sat.Oracle) (*Summary, error) {
	problem := m.Problem()
	if err := sat.Ensure(oracle, problem); err != nil {
		return nil, err
	}
	s := &Summary{
		Name:        m.Name(),
		Root:        m.Root().Name,
		Features:    m.Len(),
		Constraints: map[ConstraintKind]int{},
		Groups:      map[Cardinality]int{},
		Core:        []string{},
		Dead:        []string{},
	}
	for _, c := range m.Constraints() {
		s.Constraints[c.Kind]++
	}
	for _, vp := range m.VariationPoints() {
		s.Groups[vp.Kind]++
	}

	core, err := oracle.CoreLiterals()
	if err != nil {
		return nil, err
	}
	for _, lit := range core {
		if lit.Positive() {
			s.Core = append(s.Core, problem.Name(lit.Var()))
		} else {
			s.Dead = append(s.Dead, problem.Name(lit.Var()))
		}
	}
	if len(s.Dead) > 0 {
		logrus.Warnf("Model %s has %d dead features.", m.Name(), len(s.Dead))
	}

	s.Products, err = oracle.CountModels()
	if err != nil {
		return nil, err
	}
	logrus.Debugf("Model %s has %d products.", m.Name(), s.Products)
	return s, nil
}
