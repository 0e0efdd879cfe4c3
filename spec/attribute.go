package spec

import "strings"

// Attribute describes the data requirement of one SCIM attribute: its
// fully qualified name, data type, multi-valued flag, and — for complex
// types — its ordered sub-attributes, or — for multi-valued types — its
// ordered, recognized type tags (§3).
//
// Attribute is constructed once during schema registry initialization and
// is thereafter immutable; it is safe for concurrent read access by any
// number of workers (§5).
type Attribute struct {
	schemaURN     string
	name          string
	typ           Type
	multiValued   bool
	subAttributes []*Attribute
	typeTags      []string
}

// NewSimpleAttribute builds a singular or multi-valued non-complex
// attribute descriptor. typeTags is only meaningful when multiValued is
// true; it lists, in declared order, the recognized type tags (e.g.
// "work", "home", "mobile").
func NewSimpleAttribute(schemaURN, name string, typ Type, multiValued bool, typeTags ...string) *Attribute {
	return &Attribute{
		schemaURN:   schemaURN,
		name:        name,
		typ:         typ,
		multiValued: multiValued,
		typeTags:    typeTags,
	}
}

// NewComplexAttribute builds a singular or multi-valued complex attribute
// descriptor with the given sub-attributes in declared order.
func NewComplexAttribute(schemaURN, name string, multiValued bool, subAttributes []*Attribute, typeTags ...string) *Attribute {
	return &Attribute{
		schemaURN:     schemaURN,
		name:          name,
		typ:           TypeComplex,
		multiValued:   multiValued,
		subAttributes: subAttributes,
		typeTags:      typeTags,
	}
}

// SchemaURN returns the schema URI this attribute belongs to, or the empty
// string for core (unprefixed) attributes.
func (a *Attribute) SchemaURN() string {
	return a.schemaURN
}

// Name returns the local (unqualified) attribute name.
func (a *Attribute) Name() string {
	return a.name
}

// Type returns the data type of the attribute.
func (a *Attribute) Type() Type {
	return a.typ
}

// MultiValued returns whether the attribute allows more than one value.
func (a *Attribute) MultiValued() bool {
	return a.multiValued
}

// GoesBy returns true if this attribute can be addressed by the given name,
// case-insensitively (§4.A — attribute name lookups are case-insensitive).
func (a *Attribute) GoesBy(name string) bool {
	return strings.EqualFold(a.name, name)
}

// SubAttributeForName returns the sub-attribute addressed by name, or nil.
// Only meaningful for TypeComplex attributes.
func (a *Attribute) SubAttributeForName(name string) *Attribute {
	for _, sub := range a.subAttributes {
		if sub.GoesBy(name) {
			return sub
		}
	}
	return nil
}

// ForEachSubAttribute invokes callback on each sub-attribute in declared
// order.
func (a *Attribute) ForEachSubAttribute(callback func(sub *Attribute)) {
	for _, sub := range a.subAttributes {
		callback(sub)
	}
}

// CountSubAttributes returns the number of declared sub-attributes.
func (a *Attribute) CountSubAttributes() int {
	return len(a.subAttributes)
}

// TypeTags returns the declared, ordered list of recognized type tags for a
// multi-valued attribute. Empty for singular attributes.
func (a *Attribute) TypeTags() []string {
	return a.typeTags
}

// HasTypeTag returns true if tag (case-insensitively) is among the
// attribute's declared type tags.
func (a *Attribute) HasTypeTag(tag string) bool {
	for _, t := range a.typeTags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// FullName returns the fully qualified "schemaURN:name" form used as the
// attribute's registry key, or just name when schemaURN is empty.
func (a *Attribute) FullName() string {
	if a.schemaURN == "" {
		return a.name
	}
	return a.schemaURN + ":" + a.name
}
