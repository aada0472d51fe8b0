package api

import (
	"fmt"
	"strconv"
	"strings"
)

type AttributeKind string

const (
	AttributeInt    AttributeKind = "Int"
	AttributeFloat  AttributeKind = "Float"
	AttributeBool   AttributeKind = "Bool"
	AttributeString AttributeKind = "String"
)

// Attribute is a typed value attached to a configuration record.
type Attribute struct {
	Kind  AttributeKind
	Int   int64
	Float float64
	Bool  bool
	Str   string
}

// ParseAttribute parses a raw value once, trying integer, float, boolean and
// finally falling back to a string.
func ParseAttribute(raw string) Attribute {
	value := strings.TrimSpace(raw)
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return Attribute{Kind: AttributeInt, Int: i}
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return Attribute{Kind: AttributeFloat, Float: f}
	}
	switch strings.ToLower(value) {
	case "true":
		return Attribute{Kind: AttributeBool, Bool: true}
	case "false":
		return Attribute{Kind: AttributeBool, Bool: false}
	}
	return Attribute{Kind: AttributeString, Str: value}
}

func (a Attribute) String() string {
	switch a.Kind {
	case AttributeInt:
		return strconv.FormatInt(a.Int, 10)
	case AttributeFloat:
		return strconv.FormatFloat(a.Float, 'g', -1, 64)
	case AttributeBool:
		return strconv.FormatBool(a.Bool)
	default:
		return a.Str
	}
}

// Attributes is the typed key-value store of a record.
type Attributes map[string]Attribute

// Float returns the attribute as a number, converting integers.
func (a Attributes) Float(key string) (float64, error) {
	attr, ok := a[key]
	if !ok {
		return 0, fmt.Errorf("attribute %s does not exist", key)
	}
	switch attr.Kind {
	case AttributeInt:
		return float64(attr.Int), nil
	case AttributeFloat:
		return attr.Float, nil
	default:
		return 0, fmt.Errorf("attribute %s is of kind %s, not numeric", key, attr.Kind)
	}
}

// Record is a configuration read together with its attributes.
type Record struct {
	Configuration Configuration
	Attributes    Attributes
}
