package api

import (
	"encoding/hex"
	"slices"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/exp/maps"
)

// Population is a set of configurations, unique by content and unordered.
type Population struct {
	configurations map[string]Configuration
	features       map[string]struct{}
}

func NewPopulation(configurations ...Configuration) *Population {
	p := &Population{}
	p.Replace(configurations)
	return p
}

// Replace swaps the whole content of the population and recomputes the set of
// features selected by at least one member.
func (p *Population) Replace(configurations []Configuration) {
	p.configurations = make(map[string]Configuration, len(configurations))
	p.features = map[string]struct{}{}
	for _, c := range configurations {
		p.configurations[c.Key()] = c
		for _, f := range c.Selected() {
			p.features[f] = struct{}{}
		}
	}
}

func (p *Population) Len() int {
	return len(p.configurations)
}

// Configurations returns the members ordered by their content key.
func (p *Population) Configurations() []Configuration {
	keys := p.keys()
	configurations := make([]Configuration, 0, len(keys))
	for _, k := range keys {
		configurations = append(configurations, p.configurations[k])
	}
	return configurations
}

// Features returns the sorted union of selected elements over all members.
func (p *Population) Features() []string {
	features := maps.Keys(p.features)
	slices.Sort(features)
	return features
}

func (p *Population) Contains(c Configuration) bool {
	_, ok := p.configurations[c.Key()]
	return ok
}

// Equal reports whether both populations hold the same configuration set.
func (p *Population) Equal(other *Population) bool {
	if p.Len() != other.Len() {
		return false
	}
	for k := range p.configurations {
		if _, ok := other.configurations[k]; !ok {
			return false
		}
	}
	return true
}

// Hash is a BLAKE2b-256 digest over the sorted member keys and therefore
// independent of insertion order.
func (p *Population) Hash() string {
	h, _ := blake2b.New256(nil)
	for _, k := range p.keys() {
		h.Write([]byte(k))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (p *Population) keys() []string {
	keys := maps.Keys(p.configurations)
	slices.Sort(keys)
	return keys
}
