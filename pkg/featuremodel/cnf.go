package featuremodel

import (
	"github.com/crillab/gophersat/bf"
	"github.com/rmohr/plstats/pkg/sat"
)

func satVar(id int) int {
	return id + 1
}

// toProblem encodes the model as CNF. Feature i is bound to variable i+1.
func toProblem(m *Model) *sat.Problem {
	var clauses [][]int
	clauses = append(clauses, []int{satVar(m.Root().ID)})
	for _, f := range m.features {
		if f.Parent == NoParent {
			continue
		}
		// a child implies its parent
		clauses = append(clauses, []int{-satVar(f.ID), satVar(f.Parent)})
		if f.Mandatory && f.Group == NoGroup {
			clauses = append(clauses, []int{-satVar(f.Parent), satVar(f.ID)})
		}
	}
	for _, vp := range m.variationPoints {
		atLeastOne := []int{-satVar(vp.Parent)}
		for _, v := range vp.Variants {
			atLeastOne = append(atLeastOne, satVar(v))
		}
		clauses = append(clauses, atLeastOne)
		if vp.Kind != Alternative {
			continue
		}
		for i, a := range vp.Variants {
			for _, b := range vp.Variants[i+1:] {
				clauses = append(clauses, []int{-satVar(a), -satVar(b)})
			}
		}
	}
	for _, c := range m.constraints {
		switch c.Kind {
		case Requires:
			clauses = append(clauses, []int{-satVar(c.From), satVar(c.To)})
		case Excludes:
			clauses = append(clauses, []int{-satVar(c.From), -satVar(c.To)})
		}
	}
	return sat.NewProblem(m.name, m.Features(), clauses)
}

func toFormula(m *Model) bf.Formula {
	v := func(id int) bf.Formula {
		return bf.Var(m.features[id].Name)
	}
	ands := []bf.Formula{v(m.Root().ID)}
	for _, f := range m.features {
		if f.Parent == NoParent {
			continue
		}
		ands = append(ands, bf.Implies(v(f.ID), v(f.Parent)))
		if f.Mandatory && f.Group == NoGroup {
			ands = append(ands, bf.Implies(v(f.Parent), v(f.ID)))
		}
	}
	for _, vp := range m.variationPoints {
		switch vp.Kind {
		case Alternative:
			var names []string
			for _, id := range vp.Variants {
				names = append(names, m.features[id].Name)
			}
			ands = append(ands, bf.Implies(v(vp.Parent), bf.Unique(names...)))
		default:
			var variants []bf.Formula
			for _, id := range vp.Variants {
				variants = append(variants, v(id))
			}
			ands = append(ands, bf.Implies(v(vp.Parent), bf.Or(variants...)))
		}
	}
	for _, c := range m.constraints {
		switch c.Kind {
		case Requires:
			ands = append(ands, bf.Implies(v(c.From), v(c.To)))
		case Excludes:
			ands = append(ands, bf.Not(bf.And(v(c.From), v(c.To))))
		}
	}
	return bf.And(ands...)
}
