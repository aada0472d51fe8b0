package complete

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/rmohr/plstats/pkg/api"
	"github.com/rmohr/plstats/pkg/featuremodel"
	"github.com/rmohr/plstats/pkg/sat"
)

func loadPizza(g *WithT) *featuremodel.Model {
	m, err := featuremodel.LoadModelFile("../../testdata/pizza.yaml")
	g.Expect(err).ToNot(HaveOccurred())
	return m
}

func TestComplete(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		expected []string
	}{
		{
			name:     "leaf without ancestors",
			selected: []string{"Salami"},
			expected: []string{"Big", "Dough", "Neapolitan", "Pizza", "Salami", "Size", "Topping"},
		},
		{
			name:     "required feature is pulled in",
			selected: []string{"CheesyCrust", "Ham"},
			expected: []string{"Big", "CheesyCrust", "Dough", "Ham", "Neapolitan", "Pizza", "Size", "Topping"},
		},
		{
			name:     "empty selection",
			selected: nil,
			expected: []string{"Big", "Dough", "Ham", "Neapolitan", "Pizza", "Size", "Topping"},
		},
		{
			name:     "already decided groups are kept",
			selected: []string{"Mozzarella", "Salami", "Normal", "Sicilian"},
			expected: []string{"Dough", "Mozzarella", "Normal", "Pizza", "Salami", "Sicilian", "Size", "Topping"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			m := loadPizza(g)

			completed, err := NewCompleter(sat.NewSession()).Complete(m, api.Selecting(tt.selected...))
			g.Expect(err).ToNot(HaveOccurred())
			g.Expect(completed.Selected()).To(Equal(tt.expected))
			g.Expect(completed.IsFull(m.Features())).To(BeTrue())
			g.Expect(m.Valid(completed)).To(BeTrue())
			for _, s := range tt.selected {
				g.Expect(completed.IsSelected(s)).To(BeTrue())
			}
			for _, s := range completed.Selected() {
				f, _ := m.Lookup(s)
				for _, a := range featuremodel.Ancestors(m, f) {
					g.Expect(completed.IsSelected(a.Name)).To(BeTrue())
				}
			}
		})
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	g := NewGomegaWithT(t)
	m := loadPizza(g)
	completer := NewCompleter(sat.NewSession())

	full := api.NewConfiguration(map[string]bool{
		"Pizza": true, "Topping": true, "Salami": true, "Ham": true, "Mozzarella": false,
		"Size": true, "Normal": false, "Big": true, "Dough": true, "Neapolitan": false,
		"Sicilian": true, "CheesyCrust": true,
	})
	completed, err := completer.Complete(m, full)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(completed.Equal(full)).To(BeTrue())

	again, err := completer.Complete(m, completed)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(again.Equal(completed)).To(BeTrue())
}

func TestCompleteInfeasible(t *testing.T) {
	g := NewGomegaWithT(t)
	m := loadPizza(g)

	_, err := NewCompleter(sat.NewSession()).Complete(m, api.Selecting("Normal", "CheesyCrust"))
	g.Expect(err).To(MatchError(ErrInfeasiblePartialConfiguration))

	_, err = NewCompleter(sat.NewSession()).Complete(m, api.Selecting("Neapolitan", "Sicilian"))
	g.Expect(err).To(MatchError(ErrInfeasiblePartialConfiguration))
}

func TestCompleteRejectsUnknownFeatures(t *testing.T) {
	g := NewGomegaWithT(t)
	m := loadPizza(g)
	session := sat.NewSession()

	_, err := NewCompleter(session).Complete(m, api.Selecting("Salami", "Pineapple"))
	g.Expect(err).To(MatchError(featuremodel.ErrInvalidFeatureReference))
	g.Expect(session.Bound()).To(BeNil())
	g.Expect(session.Queries()).To(BeZero())
}

func TestCompleteRebindsSession(t *testing.T) {
	g := NewGomegaWithT(t)
	pizza := loadPizza(g)
	other, err := featuremodel.NewBuilder("tiny", "r").Group("r", featuremodel.Alternative, "b", "a").Build()
	g.Expect(err).ToNot(HaveOccurred())

	session := sat.NewSession()
	completer := NewCompleter(session)

	_, err = completer.Complete(pizza, api.Selecting("Salami"))
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(session.Bound().ID).To(Equal(pizza.Problem().ID))

	completed, err := completer.Complete(other, api.Selecting())
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(session.Bound().ID).To(Equal(other.Problem().ID))
	g.Expect(completed.Selected()).To(Equal([]string{"a", "r"}))
}

type brokenOracle struct {
	*sat.Session
}

func (b *brokenOracle) Bind(p *sat.Problem) error {
	if b.Bound() != nil {
		return errors.New("no more bindings")
	}
	return b.Session.Bind(p)
}

func TestCompleteFailsWhenRebindingFails(t *testing.T) {
	g := NewGomegaWithT(t)
	pizza := loadPizza(g)
	other, err := featuremodel.NewBuilder("tiny", "r").Optional("r", "a").Build()
	g.Expect(err).ToNot(HaveOccurred())

	completer := NewCompleter(&brokenOracle{Session: sat.NewSession()})
	_, err = completer.Complete(pizza, api.Selecting("Ham"))
	g.Expect(err).ToNot(HaveOccurred())

	_, err = completer.Complete(other, api.Selecting("a"))
	g.Expect(err).To(MatchError(sat.ErrOracleBindingMismatch))
}
