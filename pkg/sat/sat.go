package sat

import (
	"github.com/crillab/gophersat/solver"
	"github.com/sirupsen/logrus"
)

// Session is an Oracle backed by the gophersat CDCL solver. Assumptions are
// passed to the solver as unit clauses on top of the bound clause set. Single
// queries run on a fresh solver, an enumeration keeps one solver for its whole
// lifetime.
type Session struct {
	problem *Problem
	queries int
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) Bind(p *Problem) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.problem = p
	s.queries = 0
	logrus.Debugf("Bound %d clauses over %d variables as %s", len(p.Clauses), p.NumVars(), p.ID)
	return nil
}

func (s *Session) Bound() *Problem {
	return s.problem
}

// Queries returns how many solver runs were made since the last bind.
func (s *Session) Queries() int {
	return s.queries
}

func (s *Session) Solve(assumptions []Literal) (bool, error) {
	if s.problem == nil {
		return false, ErrNotBound
	}
	_, sat := s.solve(s.problem, assumptions)
	return sat, nil
}

func (s *Session) Enumerate(assumptions []Literal, limit int) (ModelIterator, error) {
	if s.problem == nil {
		return nil, ErrNotBound
	}
	return &Models{
		session: s,
		problem: s.problem,
		solver:  s.newSolver(s.problem, assumptions),
		limit:   limit,
	}, nil
}

// CountModels returns the number of models of the bound problem.
func (s *Session) CountModels() (int, error) {
	if s.problem == nil {
		return 0, ErrNotBound
	}
	s.queries++
	return s.newSolver(s.problem, nil).CountModels(), nil
}

// CoreLiterals finds a first model and then tries to refute every literal of
// it. Literals which cannot be flipped hold in every model.
func (s *Session) CoreLiterals() ([]Literal, error) {
	if s.problem == nil {
		return nil, ErrNotBound
	}
	model, sat := s.solve(s.problem, nil)
	if !sat {
		logrus.Warnf("Problem %s has no models, there are no core literals", s.problem.ID)
		return nil, nil
	}
	var core []Literal
	for v := 1; v <= s.problem.NumVars(); v++ {
		lit := Neg(v)
		if value(model, v) {
			lit = Pos(v)
		}
		if _, sat := s.solve(s.problem, []Literal{lit.Negate()}); !sat {
			core = append(core, lit)
		}
	}
	logrus.Debugf("Found %d core literals in %s", len(core), s.problem.ID)
	return core, nil
}

func (s *Session) solve(p *Problem, assumptions []Literal) ([]bool, bool) {
	s.queries++
	gs := s.newSolver(p, assumptions)
	if gs.Solve() != solver.Sat {
		return nil, false
	}
	return gs.Model(), true
}

// newSolver loads the clauses of p into a fresh solver, with the assumptions
// as unit clauses.
func (s *Session) newSolver(p *Problem, assumptions []Literal) *solver.Solver {
	cnf := make([][]int, 0, len(p.Clauses)+len(assumptions))
	cnf = append(cnf, p.Clauses...)
	for _, a := range assumptions {
		cnf = append(cnf, []int{int(a)})
	}
	return solver.New(solver.ParseSlice(cnf))
}

func value(model []bool, v int) bool {
	return v-1 < len(model) && model[v-1]
}

// Models enumerates models on a single incremental solver. Every model found
// is excluded from the following searches by appending a blocking clause.
type Models struct {
	session *Session
	problem *Problem
	solver  *solver.Solver
	limit   int
	found   int
	current []Literal
	done    bool
}

func (m *Models) Next() bool {
	if m.done {
		return false
	}
	if m.limit > 0 && m.found >= m.limit {
		logrus.Debugf("Stopping enumeration after %d models", m.found)
		m.Close()
		return false
	}
	m.session.queries++
	if m.solver.Solve() != solver.Sat {
		m.Close()
		return false
	}
	model := m.solver.Model()
	m.found++
	m.current = make([]Literal, 0, len(model))
	block := make([]solver.Lit, 0, m.problem.NumVars())
	for v := 1; v <= m.problem.NumVars(); v++ {
		if value(model, v) {
			m.current = append(m.current, Pos(v))
			block = append(block, solver.IntToLit(int32(-v)))
		} else {
			block = append(block, solver.IntToLit(int32(v)))
		}
	}
	m.solver.AppendClause(solver.NewClause(block))
	return true
}

func (m *Models) Model() []Literal {
	return m.current
}

func (m *Models) Err() error {
	return nil
}

// Found returns the number of models yielded so far.
func (m *Models) Found() int {
	return m.found
}

// Close stops the enumeration and releases the solver. Further calls to Next
// return false.
func (m *Models) Close() {
	m.done = true
	m.current = nil
	m.solver = nil
}
