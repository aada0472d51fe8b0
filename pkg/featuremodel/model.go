package featuremodel

import (
	"errors"
	"fmt"

	"github.com/crillab/gophersat/bf"
	"github.com/rmohr/plstats/pkg/api"
	"github.com/rmohr/plstats/pkg/sat"
)

var ErrInvalidFeatureReference = errors.New("feature does not exist in the model")

const (
	NoParent = -1
	NoGroup  = -1
)

type Cardinality string

const (
	// Or requires at least one variant when the parent is selected.
	Or Cardinality = "or"
	// Alternative requires exactly one variant when the parent is selected.
	Alternative Cardinality = "alternative"
)

type ConstraintKind string

const (
	Requires ConstraintKind = "requires"
	Excludes ConstraintKind = "excludes"
)

// Feature is an entry of the model arena. Parent and Group are arena
// indices, NoParent and NoGroup mark their absence.
type Feature struct {
	ID        int
	Name      string
	Parent    int
	Mandatory bool
	Group     int
}

type VariationPoint struct {
	Parent   int
	Variants []int
	Kind     Cardinality
}

type Constraint struct {
	Kind ConstraintKind
	From int
	To   int
}

// Hierarchy is the read-only view on a feature model needed to complete and
// enumerate configurations.
type Hierarchy interface {
	// Features returns all feature names in arena order.
	Features() []string
	Feature(id int) Feature
	Lookup(name string) (Feature, bool)
	Parent(f Feature) (Feature, bool)
	// Implied returns the features whose selection is forced by selecting f
	// other than its ancestors.
	Implied(f Feature) []Feature
	VariationPoints() []VariationPoint
	Problem() *sat.Problem
}

// Model owns all features of a feature model in one arena.
type Model struct {
	name            string
	features        []Feature
	index           map[string]int
	variationPoints []VariationPoint
	constraints     []Constraint
	implied         [][]int
	problem         *sat.Problem
	formula         bf.Formula
}

func (m *Model) Name() string {
	return m.name
}

func (m *Model) Len() int {
	return len(m.features)
}

func (m *Model) Root() Feature {
	return m.features[0]
}

func (m *Model) Features() []string {
	names := make([]string, len(m.features))
	for i, f := range m.features {
		names[i] = f.Name
	}
	return names
}

func (m *Model) Feature(id int) Feature {
	return m.features[id]
}

func (m *Model) Lookup(name string) (Feature, bool) {
	id, ok := m.index[name]
	if !ok {
		return Feature{}, false
	}
	return m.features[id], true
}

func (m *Model) Parent(f Feature) (Feature, bool) {
	if f.Parent == NoParent {
		return Feature{}, false
	}
	return m.features[f.Parent], true
}

func (m *Model) Children(f Feature) []Feature {
	var children []Feature
	for _, c := range m.features {
		if c.Parent == f.ID {
			children = append(children, c)
		}
	}
	return children
}

func (m *Model) Implied(f Feature) []Feature {
	implied := make([]Feature, 0, len(m.implied[f.ID]))
	for _, id := range m.implied[f.ID] {
		implied = append(implied, m.features[id])
	}
	return implied
}

func (m *Model) VariationPoints() []VariationPoint {
	return m.variationPoints
}

func (m *Model) Constraints() []Constraint {
	return m.constraints
}

func (m *Model) Problem() *sat.Problem {
	return m.problem
}

// Formula returns the model semantics as a boolean formula over feature names.
func (m *Model) Formula() bf.Formula {
	return m.formula
}

// Valid reports whether a configuration is a valid product. Features without
// an entry count as deselected.
func (m *Model) Valid(c api.Configuration) bool {
	return m.formula.Eval(c.Elements())
}

// Ancestors returns the parent chain of f from its parent up to the root.
func Ancestors(h Hierarchy, f Feature) []Feature {
	var ancestors []Feature
	for p, ok := h.Parent(f); ok; p, ok = h.Parent(p) {
		ancestors = append(ancestors, p)
	}
	return ancestors
}

// CheckReferences makes sure that every name with an entry in c exists in h.
func CheckReferences(h Hierarchy, c api.Configuration) error {
	for _, name := range c.Names() {
		if _, ok := h.Lookup(name); !ok {
			return fmt.Errorf("%w: %s", ErrInvalidFeatureReference, name)
		}
	}
	return nil
}

// Violated reports whether the cardinality rule of vp is broken under the
// given selection. A deselected parent never violates its group.
func Violated(vp VariationPoint, selected func(id int) bool) bool {
	if !selected(vp.Parent) {
		return false
	}
	n := 0
	for _, v := range vp.Variants {
		if selected(v) {
			n++
		}
	}
	if vp.Kind == Alternative {
		return n != 1
	}
	return n == 0
}
