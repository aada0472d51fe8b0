package sat

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotBound              = errors.New("no problem is bound to the oracle")
	ErrOracleBindingMismatch = errors.New("oracle is bound to a different model")
)

// Oracle answers satisfiability questions about a bound problem. An Oracle
// keeps mutable per-binding state and must not be shared between concurrent
// callers.
type Oracle interface {
	// Bind loads a problem, replacing whatever was bound before.
	Bind(p *Problem) error
	// Bound returns the currently bound problem or nil.
	Bound() *Problem
	// Solve reports whether the bound problem is satisfiable under the
	// given assumptions.
	Solve(assumptions []Literal) (bool, error)
	// Enumerate lazily yields every model satisfying the assumptions. A
	// limit of zero means no limit.
	Enumerate(assumptions []Literal, limit int) (ModelIterator, error)
	// CoreLiterals returns the literals which are true in every model.
	CoreLiterals() ([]Literal, error)
	// CountModels returns the number of models of the bound problem.
	CountModels() (int, error)
}

// ModelIterator yields models one by one. It is single-use.
type ModelIterator interface {
	Next() bool
	// Model returns the positive literals of the current model.
	Model() []Literal
	Err() error
	// Close ends the enumeration early and releases its resources.
	Close()
}

// Ensure makes sure that o is bound to p and rebinds it otherwise.
func Ensure(o Oracle, p *Problem) error {
	bound := o.Bound()
	if bound != nil && bound.ID == p.ID {
		return nil
	}
	if bound == nil {
		logrus.Debugf("Binding oracle to %s", p.ID)
		return o.Bind(p)
	}
	logrus.Infof("Oracle is bound to %s, rebinding to %s", bound.ID, p.ID)
	if err := o.Bind(p); err != nil {
		return fmt.Errorf("%w: rebinding from %s to %s failed: %v", ErrOracleBindingMismatch, bound.ID, p.ID, err)
	}
	return nil
}
