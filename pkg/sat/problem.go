package sat

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Literal is a signed variable index. A positive value asserts the variable,
// a negative value its negation. Zero is not a valid literal.
type Literal int

func Pos(v int) Literal {
	return Literal(v)
}

func Neg(v int) Literal {
	return Literal(-v)
}

func (l Literal) Var() int {
	if l < 0 {
		return int(-l)
	}
	return int(l)
}

func (l Literal) Positive() bool {
	return l > 0
}

func (l Literal) Negate() Literal {
	return -l
}

// Problem is a CNF clause set together with the mapping from variables to
// feature names. Variable v is bound to Names[v-1].
type Problem struct {
	// ID identifies the bound model. Two problems with the same ID are
	// interchangeable for an oracle session.
	ID      string
	Clauses [][]int
	Names   []string
	vars    map[string]int
}

// NewProblem creates a problem and derives its identity from the name and a
// digest of the clauses and variable names.
func NewProblem(name string, names []string, clauses [][]int) *Problem {
	p := &Problem{
		Clauses: clauses,
		Names:   names,
		vars:    make(map[string]int, len(names)),
	}
	for i, n := range names {
		p.vars[n] = i + 1
	}
	p.ID = fmt.Sprintf("%s@%s", name, p.digest())
	return p
}

func (p *Problem) digest() string {
	h, _ := blake2b.New256(nil)
	buf := make([]byte, binary.MaxVarintLen64)
	for _, n := range p.Names {
		h.Write([]byte(n))
		h.Write([]byte{0})
	}
	for _, clause := range p.Clauses {
		for _, lit := range clause {
			h.Write(buf[:binary.PutVarint(buf, int64(lit))])
		}
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func (p *Problem) NumVars() int {
	return len(p.Names)
}

// Var returns the variable bound to a feature name.
func (p *Problem) Var(name string) (int, bool) {
	v, ok := p.vars[name]
	return v, ok
}

// Name returns the feature name bound to variable v.
func (p *Problem) Name(v int) string {
	return p.Names[v-1]
}

// Validate checks that every literal refers to a named variable.
func (p *Problem) Validate() error {
	if len(p.Names) == 0 {
		return fmt.Errorf("problem %s has no variables", p.ID)
	}
	if len(p.vars) != len(p.Names) {
		return fmt.Errorf("problem %s maps the same name to more than one variable", p.ID)
	}
	for i, clause := range p.Clauses {
		for _, lit := range clause {
			l := Literal(lit)
			if lit == 0 || l.Var() > len(p.Names) {
				return fmt.Errorf("clause %d of problem %s references unknown variable %d", i, p.ID, lit)
			}
		}
	}
	return nil
}
