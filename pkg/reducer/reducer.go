package reducer

import (
	"github.com/rmohr/plstats/pkg/api"
	"github.com/rmohr/plstats/pkg/featuremodel"
	"github.com/rmohr/plstats/pkg/sat"
	"github.com/sirupsen/logrus"
)

type Reduction struct {
	// Configuration is the reduced, possibly still partial, configuration.
	Configuration api.Configuration
	// Assumptions has one literal per entry of Configuration.
	Assumptions []sat.Literal
	// Core lists the features selected in every product of the model.
	Core []string
	// Pruned lists the variants deselected because their group was decided.
	Pruned []string
}

// Reduce fixes core features, ancestors of selected features and the
// remaining variants of decided groups. The oracle gets bound to the model of
// h if needed. Core features and ancestors of selected features are selected
// even if partial deselects them, every other explicit entry is kept.
func Reduce(h featuremodel.Hierarchy, oracle sat.Oracle, partial api.Configuration) (*Reduction, error) {
	if err := featuremodel.CheckReferences(h, partial); err != nil {
		return nil, err
	}
	problem := h.Problem()
	if err := sat.Ensure(oracle, problem); err != nil {
		return nil, err
	}

	elements := partial.Elements()
	reduction := &Reduction{}

	core, err := oracle.CoreLiterals()
	if err != nil {
		return nil, err
	}
	for _, lit := range core {
		if !lit.Positive() {
			continue
		}
		name := problem.Name(lit.Var())
		reduction.Core = append(reduction.Core, name)
		if selected, ok := elements[name]; ok && !selected {
			logrus.Warnf("Overriding explicit deselection of core feature %s.", name)
		}
		elements[name] = true
	}

	for _, name := range partial.Selected() {
		f, _ := h.Lookup(name)
		for _, a := range featuremodel.Ancestors(h, f) {
			if selected, ok := elements[a.Name]; !ok {
				logrus.Debugf("%s selects its ancestor %s", name, a.Name)
			} else if !selected {
				logrus.Warnf("Overriding explicit deselection of %s, it is an ancestor of %s.", a.Name, name)
			}
			elements[a.Name] = true
		}
	}

	for _, vp := range h.VariationPoints() {
		if !elements[h.Feature(vp.Parent).Name] {
			continue
		}
		decided := false
		for _, id := range vp.Variants {
			if elements[h.Feature(id).Name] {
				decided = true
				break
			}
		}
		if !decided {
			continue
		}
		for _, id := range vp.Variants {
			name := h.Feature(id).Name
			if _, ok := elements[name]; ok {
				continue
			}
			logrus.Debugf("Pruning %s, the %s group of %s is decided", name, vp.Kind, h.Feature(vp.Parent).Name)
			elements[name] = false
			reduction.Pruned = append(reduction.Pruned, name)
		}
	}

	reduction.Configuration = api.NewConfiguration(elements)
	for _, name := range reduction.Configuration.Names() {
		v, _ := problem.Var(name)
		if elements[name] {
			reduction.Assumptions = append(reduction.Assumptions, sat.Pos(v))
		} else {
			reduction.Assumptions = append(reduction.Assumptions, sat.Neg(v))
		}
	}
	logrus.Infof("Reduced %d explicit entries to %d assumptions, pruned %d variants.", partial.Len(), len(reduction.Assumptions), len(reduction.Pruned))
	return reduction, nil
}
