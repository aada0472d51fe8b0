package api

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
)

// Configuration is an immutable assignment of boolean values to feature names.
// A configuration is partial if not every feature of a model has an entry and
// full otherwise.
type Configuration struct {
	elements map[string]bool
}

// NewConfiguration copies the given elements into a new Configuration.
func NewConfiguration(elements map[string]bool) Configuration {
	c := Configuration{elements: make(map[string]bool, len(elements))}
	for k, v := range elements {
		c.elements[k] = v
	}
	return c
}

// Selecting returns a configuration with only the given names mapped to true.
func Selecting(names ...string) Configuration {
	c := Configuration{elements: make(map[string]bool, len(names))}
	for _, n := range names {
		c.elements[n] = true
	}
	return c
}

func (c Configuration) Value(name string) (selected bool, ok bool) {
	selected, ok = c.elements[name]
	return
}

func (c Configuration) IsSelected(name string) bool {
	return c.elements[name]
}

// Selected returns the sorted names mapped to true.
func (c Configuration) Selected() []string {
	var selected []string
	for k, v := range c.elements {
		if v {
			selected = append(selected, k)
		}
	}
	slices.Sort(selected)
	return selected
}

// SelectedCount returns the number of names mapped to true.
func (c Configuration) SelectedCount() int {
	n := 0
	for _, v := range c.elements {
		if v {
			n++
		}
	}
	return n
}

// Names returns the sorted names with an explicit entry.
func (c Configuration) Names() []string {
	names := maps.Keys(c.elements)
	slices.Sort(names)
	return names
}

func (c Configuration) Len() int {
	return len(c.elements)
}

// Elements returns a copy of the underlying assignment.
func (c Configuration) Elements() map[string]bool {
	elements := make(map[string]bool, len(c.elements))
	for k, v := range c.elements {
		elements[k] = v
	}
	return elements
}

// With returns a copy of c where name is mapped to selected.
func (c Configuration) With(name string, selected bool) Configuration {
	elements := c.Elements()
	elements[name] = selected
	return Configuration{elements: elements}
}

// IsFull reports whether every given feature has an explicit entry.
func (c Configuration) IsFull(features []string) bool {
	for _, f := range features {
		if _, ok := c.elements[f]; !ok {
			return false
		}
	}
	return true
}

// Key is the canonical content key. Two configurations are equal iff their
// keys are equal. Names are quoted so separators inside a name stay
// unambiguous.
func (c Configuration) Key() string {
	var sb strings.Builder
	for i, name := range c.Names() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Quote(name))
		if c.elements[name] {
			sb.WriteString("=1")
		} else {
			sb.WriteString("=0")
		}
	}
	return sb.String()
}

func (c Configuration) Equal(other Configuration) bool {
	if len(c.elements) != len(other.elements) {
		return false
	}
	for k, v := range c.elements {
		if ov, ok := other.elements[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

func (c Configuration) String() string {
	return fmt.Sprintf("%v", c.Selected())
}
