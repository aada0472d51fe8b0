package featuremodel

import (
	"fmt"
	"os"

	"github.com/crillab/gophersat/bf"
	"github.com/sirupsen/logrus"
	"sigs.k8s.io/yaml"
)

// FeatureDocument is the serialized form of a feature and its subtree. When
// Group is set, all children are variants of one variation point.
type FeatureDocument struct {
	Name      string            `json:"name"`
	Mandatory bool              `json:"mandatory,omitempty"`
	Group     Cardinality       `json:"group,omitempty"`
	Children  []FeatureDocument `json:"children,omitempty"`
}

// ConstraintDocument holds exactly one of Requires or Excludes, each naming
// two features.
type ConstraintDocument struct {
	Requires []string `json:"requires,omitempty"`
	Excludes []string `json:"excludes,omitempty"`
}

type Document struct {
	Name        string               `json:"name"`
	Root        FeatureDocument      `json:"root"`
	Constraints []ConstraintDocument `json:"constraints,omitempty"`
}

func LoadModelFile(file string) (*Model, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load feature model %s: %v", file, err)
	}
	return m, nil
}

func Parse(data []byte) (*Model, error) {
	doc := &Document{}
	if err := yaml.UnmarshalStrict(data, doc); err != nil {
		return nil, err
	}
	return FromDocument(doc)
}

func FromDocument(doc *Document) (*Model, error) {
	name := doc.Name
	if name == "" {
		name = doc.Root.Name
	}
	b := NewBuilder(name, doc.Root.Name)
	addChildren(b, doc.Root)
	for i, c := range doc.Constraints {
		switch {
		case len(c.Requires) == 2 && len(c.Excludes) == 0:
			b.Requires(c.Requires[0], c.Requires[1])
		case len(c.Excludes) == 2 && len(c.Requires) == 0:
			b.Excludes(c.Excludes[0], c.Excludes[1])
		default:
			return nil, fmt.Errorf("constraint %d must name exactly two features in either requires or excludes", i)
		}
	}
	m, err := b.Build()
	if err != nil {
		return nil, err
	}
	if bf.Solve(m.Formula()) == nil {
		logrus.Warnf("Feature model %s has no valid products.", m.Name())
	}
	logrus.Infof("Loaded feature model %s with %d features.", m.Name(), m.Len())
	return m, nil
}

func addChildren(b *Builder, f FeatureDocument) {
	if len(f.Children) == 0 {
		if f.Group != "" {
			b.Group(f.Name, f.Group)
		}
		return
	}
	if f.Group != "" {
		var variants []string
		for _, c := range f.Children {
			if c.Mandatory {
				logrus.Warnf("Ignoring mandatory flag of %s, it is a variant of %s.", c.Name, f.Name)
			}
			variants = append(variants, c.Name)
		}
		b.Group(f.Name, f.Group, variants...)
	} else {
		for _, c := range f.Children {
			if c.Mandatory {
				b.Mandatory(f.Name, c.Name)
			} else {
				b.Optional(f.Name, c.Name)
			}
		}
	}
	for _, c := range f.Children {
		addChildren(b, c)
	}
}

// ToDocument serializes a model back into its document form.
func (m *Model) ToDocument() *Document {
	var build func(f Feature) FeatureDocument
	build = func(f Feature) FeatureDocument {
		doc := FeatureDocument{Name: f.Name, Mandatory: f.Mandatory}
		for _, c := range m.Children(f) {
			if c.Group != NoGroup {
				doc.Group = m.variationPoints[c.Group].Kind
			}
			doc.Children = append(doc.Children, build(c))
		}
		return doc
	}
	doc := &Document{Name: m.name, Root: build(m.Root())}
	for _, c := range m.constraints {
		pair := []string{m.features[c.From].Name, m.features[c.To].Name}
		if c.Kind == Requires {
			doc.Constraints = append(doc.Constraints, ConstraintDocument{Requires: pair})
		} else {
			doc.Constraints = append(doc.Constraints, ConstraintDocument{Excludes: pair})
		}
	}
	return doc
}

func (m *Model) Marshal() ([]byte, error) {
	return yaml.Marshal(m.ToDocument())
}
