package reducer

import (
	"github.com/rmohr/plstats/pkg/featuremodel"
	"github.com/rmohr/plstats/pkg/sat"
)

// MockOracle records how often the wrapped session gets asked.
type MockOracle struct {
	*sat.Session
	calls int
}

func (m *MockOracle) Bind(p *sat.Problem) error {
	m.calls++
	return m.Session.Bind(p)
}

func (m *MockOracle) CoreLiterals() ([]sat.Literal, error) {
	m.calls++
	return m.Session.CoreLiterals()
}

func newMockOracle() *MockOracle {
	return &MockOracle{Session: sat.NewSession()}
}

// newToolbox builds a model with a decided-later or-group of four tools and
// an alternative group of two handles.
func newToolbox() *featuremodel.Model {
	m, err := featuremodel.NewBuilder("toolbox", "Toolbox").
		Mandatory("Toolbox", "Tools").
		Group("Tools", featuremodel.Or, "Hammer", "Saw", "Drill", "Wrench").
		Optional("Toolbox", "Handle").
		Group("Handle", featuremodel.Alternative, "Wood", "Steel").
		Build()
	if err != nil {
		panic(err)
	}
	return m
}
