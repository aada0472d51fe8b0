package enumerate

import (
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

func expectProducts(g *WithT, m *featuremodel.Model, partial api.Configuration, pop *api.Population) {
	for _, c := range pop.Configurations() {
		g.Expect(c.IsFull(m.Features())).To(BeTrue())
		g.Expect(m.Valid(c)).To(BeTrue(), c.String())
		for _, s := range partial.Selected() {
			g.Expect(c.IsSelected(s)).To(BeTrue())
		}
		for _, s := range c.Selected() {
			f, _ := m.Lookup(s)
			for _, a := range featuremodel.Ancestors(m, f) {
				g.Expect(c.IsSelected(a.Name)).To(BeTrue())
			}
		}
		for _, vp := range m.VariationPoints() {
			n := 0
			for _, id := range vp.Variants {
				if c.IsSelected(m.Feature(id).Name) {
					n++
				}
			}
			if vp.Kind == featuremodel.Alternative {
				g.Expect(n).To(BeNumerically("<=", 1))
			}
			if c.IsSelected(m.Feature(vp.Parent).Name) {
				g.Expect(n).To(BeNumerically(">=", 1))
			}
		}
	}
}

func TestAll(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		products int
	}{
		{name: "everything", selected: nil, products: 42},
		{name: "decided topping group", selected: []string{"Salami"}, products: 6},
		{name: "two toppings decided", selected: []string{"Salami", "Ham"}, products: 6},
		{name: "crust implies big", selected: []string{"CheesyCrust", "Mozzarella", "Sicilian"}, products: 1},
		{name: "no extension", selected: []string{"Normal", "CheesyCrust"}, products: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			m := loadPizza(g)
			partial := api.Selecting(tt.selected...)

			pop, err := NewEnumerator(sat.NewSession()).All(m, partial, 0)
			g.Expect(err).ToNot(HaveOccurred())
			g.Expect(pop.Len()).To(Equal(tt.products))
			expectProducts(g, m, partial, pop)
		})
	}
}

func TestPruningSkipsDecidedBranches(t *testing.T) {
	g := NewGomegaWithT(t)
	m := loadPizza(g)

	pop, err := NewEnumerator(sat.NewSession()).All(m, api.Selecting("Salami"), 0)
	g.Expect(err).ToNot(HaveOccurred())
	for _, c := range pop.Configurations() {
		g.Expect(c.Selected()).ToNot(ContainElement("Ham"))
		g.Expect(c.Selected()).ToNot(ContainElement("Mozzarella"))
	}

	// without pruning every topping combination containing salami shows up
	session := sat.NewSession()
	g.Expect(session.Bind(m.Problem())).To(Succeed())
	v, _ := m.Problem().Var("Salami")
	models, err := session.Enumerate([]sat.Literal{sat.Pos(v)}, 0)
	g.Expect(err).ToNot(HaveOccurred())
	unpruned := 0
	for models.Next() {
		unpruned++
	}
	g.Expect(unpruned).To(Equal(24))
}

func TestIterateHonorsLimit(t *testing.T) {
	g := NewGomegaWithT(t)
	m := loadPizza(g)

	it, err := NewEnumerator(sat.NewSession()).Iterate(m, api.Selecting(), 5)
	g.Expect(err).ToNot(HaveOccurred())
	count := 0
	for it.Next() {
		g.Expect(it.Configuration().IsFull(m.Features())).To(BeTrue())
		count++
	}
	g.Expect(it.Err()).ToNot(HaveOccurred())
	g.Expect(count).To(Equal(5))
	g.Expect(it.Next()).To(BeFalse())
	g.Expect(it.Configuration().Len()).To(BeZero())
}

func TestEnumerateUnknownFeature(t *testing.T) {
	g := NewGomegaWithT(t)
	m := loadPizza(g)
	session := sat.NewSession()

	_, err := NewEnumerator(session).All(m, api.Selecting("Pineapple"), 0)
	g.Expect(err).To(MatchError(featuremodel.ErrInvalidFeatureReference))
	g.Expect(session.Queries()).To(BeZero())
}

func TestAllSelectsDeselectedAncestor(t *testing.T) {
	g := NewGomegaWithT(t)
	m, err := featuremodel.NewBuilder("chain", "r").
		Optional("r", "a").
		Optional("a", "b").
		Build()
	g.Expect(err).ToNot(HaveOccurred())

	partial := api.NewConfiguration(map[string]bool{"b": true, "a": false})
	pop, err := NewEnumerator(sat.NewSession()).All(m, partial, 0)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(pop.Len()).To(Equal(1))
	g.Expect(pop.Configurations()[0].Selected()).To(Equal([]string{"a", "b", "r"}))
}

func TestIteratorClose(t *testing.T) {
	g := NewGomegaWithT(t)
	m := loadPizza(g)
	session := sat.NewSession()

	it, err := NewEnumerator(session).Iterate(m, api.Selecting(), 0)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(it.Next()).To(BeTrue())
	g.Expect(it.Next()).To(BeTrue())
	it.Close()
	queries := session.Queries()

	g.Expect(it.Configuration().Len()).To(BeZero())
	g.Expect(it.Next()).To(BeFalse())
	g.Expect(it.Err()).ToNot(HaveOccurred())
	g.Expect(session.Queries()).To(Equal(queries))
}
