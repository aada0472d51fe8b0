/*
Package complete turns a partial configuration into a full configuration which
satisfies the feature model. Unsatisfiable selections are repaired by adding
the selections the hierarchy forces, and if that is not enough, by deciding
open variation points greedily.
*/
package complete

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rmohr/plstats/pkg/api"
	"github.com/rmohr/plstats/pkg/featuremodel"
	"github.com/rmohr/plstats/pkg/sat"
	"github.com/sirupsen/logrus"
)

var ErrInfeasiblePartialConfiguration = errors.New("partial configuration can't be completed")

// Completer caches one oracle session and rebinds it whenever it is asked to
// complete a configuration of a different model.
type Completer struct {
	oracle sat.Oracle
}

func NewCompleter(oracle sat.Oracle) *Completer {
	return &Completer{oracle: oracle}
}

// Complete returns a full configuration which keeps every selection of
// partial, satisfies the model and only adds selections needed to get there.
func (c *Completer) Complete(h featuremodel.Hierarchy, partial api.Configuration) (api.Configuration, error) {
	if err := featuremodel.CheckReferences(h, partial); err != nil {
		return api.Configuration{}, err
	}
	problem := h.Problem()
	if err := sat.Ensure(c.oracle, problem); err != nil {
		return api.Configuration{}, err
	}

	features := h.Features()
	selected := make([]bool, len(features))
	for id, name := range features {
		selected[id] = partial.IsSelected(name)
	}

	for iteration := 0; ; iteration++ {
		ok, err := c.oracle.Solve(assumptions(problem, features, selected))
		if err != nil {
			return api.Configuration{}, err
		}
		if ok {
			logrus.Debugf("Completed configuration after %d repairs", iteration)
			return toConfiguration(features, selected), nil
		}
		if iteration >= len(features) {
			break
		}
		added := closure(h, selected)
		if added == 0 {
			added = repairGroups(h, selected)
		}
		if added == 0 {
			break
		}
	}
	return api.Configuration{}, fmt.Errorf("%w: %v", ErrInfeasiblePartialConfiguration, partial)
}

// assumptions has one literal per feature, positive iff it is selected.
func assumptions(p *sat.Problem, features []string, selected []bool) []sat.Literal {
	lits := make([]sat.Literal, 0, len(features))
	for id, name := range features {
		v, _ := p.Var(name)
		if selected[id] {
			lits = append(lits, sat.Pos(v))
		} else {
			lits = append(lits, sat.Neg(v))
		}
	}
	return lits
}

// closure selects the root, every missing ancestor of a selected feature and
// every feature a selected feature implies, until nothing changes.
func closure(h featuremodel.Hierarchy, selected []bool) (added int) {
	var queue []featuremodel.Feature
	for id, s := range selected {
		f := h.Feature(id)
		if !s && f.Parent == featuremodel.NoParent {
			// every product contains the root
			logrus.Debugf("Selecting root %s", f.Name)
			selected[id] = true
			added++
			s = true
		}
		if s {
			queue = append(queue, f)
		}
	}
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		required := append(featuremodel.Ancestors(h, f), h.Implied(f)...)
		for _, r := range required {
			if selected[r.ID] {
				continue
			}
			logrus.Debugf("Selecting %s, required by %s", r.Name, f.Name)
			selected[r.ID] = true
			added++
			queue = append(queue, r)
		}
	}
	return added
}

// repairGroups selects the lexicographically smallest variant of every
// variation point with a selected parent and no selected variant.
func repairGroups(h featuremodel.Hierarchy, selected []bool) (added int) {
	for _, vp := range h.VariationPoints() {
		if !selected[vp.Parent] || slices.ContainsFunc(vp.Variants, func(id int) bool { return selected[id] }) {
			continue
		}
		choice := h.Feature(vp.Variants[0])
		for _, id := range vp.Variants[1:] {
			if v := h.Feature(id); v.Name < choice.Name {
				choice = v
			}
		}
		logrus.Debugf("Selecting %s to decide the %s group of %s", choice.Name, vp.Kind, h.Feature(vp.Parent).Name)
		selected[choice.ID] = true
		added++
	}
	return added
}

func toConfiguration(features []string, selected []bool) api.Configuration {
	elements := make(map[string]bool, len(features))
	for id, name := range features {
		elements[name] = selected[id]
	}
	return api.NewConfiguration(elements)
}
