package featuremodel

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Builder assembles a Model. The first error encountered is kept and
// returned by Build.
type Builder struct {
	m   *Model
	err error
}

func NewBuilder(name string, root string) *Builder {
	b := &Builder{
		m: &Model{
			name:  name,
			index: map[string]int{},
		},
	}
	b.add(root, NoParent, false)
	return b
}

func (b *Builder) add(name string, parent int, mandatory bool) int {
	if b.err != nil {
		return NoParent
	}
	if name == "" {
		b.err = fmt.Errorf("feature names must not be empty")
		return NoParent
	}
	if _, exists := b.m.index[name]; exists {
		b.err = fmt.Errorf("feature %s is defined more than once", name)
		return NoParent
	}
	id := len(b.m.features)
	b.m.features = append(b.m.features, Feature{
		ID:        id,
		Name:      name,
		Parent:    parent,
		Mandatory: mandatory,
		Group:     NoGroup,
	})
	b.m.index[name] = id
	return id
}

func (b *Builder) parent(name string) int {
	if b.err != nil {
		return NoParent
	}
	id, ok := b.m.index[name]
	if !ok {
		b.err = fmt.Errorf("parent %s of a new feature does not exist", name)
		return NoParent
	}
	return id
}

// Mandatory adds child as a feature which is selected whenever parent is.
func (b *Builder) Mandatory(parent, child string) *Builder {
	b.add(child, b.parent(parent), true)
	return b
}

// Optional adds child as a feature which may be selected when parent is.
func (b *Builder) Optional(parent, child string) *Builder {
	b.add(child, b.parent(parent), false)
	return b
}

// Group adds the variants as children of parent which form a variation point.
func (b *Builder) Group(parent string, kind Cardinality, variants ...string) *Builder {
	p := b.parent(parent)
	if b.err != nil {
		return b
	}
	if kind != Or && kind != Alternative {
		b.err = fmt.Errorf("unknown group kind %q below %s", kind, parent)
		return b
	}
	if len(variants) == 0 {
		b.err = fmt.Errorf("%s group below %s has no variants", kind, parent)
		return b
	}
	vp := VariationPoint{Parent: p, Kind: kind}
	group := len(b.m.variationPoints)
	for _, v := range variants {
		id := b.add(v, p, false)
		if b.err != nil {
			return b
		}
		b.m.features[id].Group = group
		vp.Variants = append(vp.Variants, id)
	}
	b.m.variationPoints = append(b.m.variationPoints, vp)
	return b
}

func (b *Builder) Requires(from, to string) *Builder {
	return b.constraint(Requires, from, to)
}

func (b *Builder) Excludes(from, to string) *Builder {
	return b.constraint(Excludes, from, to)
}

func (b *Builder) constraint(kind ConstraintKind, from, to string) *Builder {
	if b.err != nil {
		return b
	}
	f, ok := b.m.index[from]
	if !ok {
		b.err = fmt.Errorf("%s constraint references unknown feature %s", kind, from)
		return b
	}
	t, ok := b.m.index[to]
	if !ok {
		b.err = fmt.Errorf("%s constraint references unknown feature %s", kind, to)
		return b
	}
	b.m.constraints = append(b.m.constraints, Constraint{Kind: kind, From: f, To: t})
	return b
}

// Build finalizes the model, deriving the implied selections, the CNF problem
// and the boolean formula. The builder must not be used afterwards.
func (b *Builder) Build() (*Model, error) {
	if b.err != nil {
		return nil, b.err
	}
	m := b.m
	m.implied = make([][]int, len(m.features))
	for _, f := range m.features {
		if f.Parent != NoParent && f.Mandatory && f.Group == NoGroup {
			m.implied[f.Parent] = append(m.implied[f.Parent], f.ID)
		}
	}
	for _, c := range m.constraints {
		if c.Kind == Requires {
			m.implied[c.From] = append(m.implied[c.From], c.To)
		}
	}
	m.problem = toProblem(m)
	m.formula = toFormula(m)
	logrus.Debugf("Built feature model %s with %d features, %d variation points and %d constraints",
		m.name, len(m.features), len(m.variationPoints), len(m.constraints))
	b.m = nil
	return m, nil
}
