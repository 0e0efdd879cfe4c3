// Package ldapval models the LDAP-side of the mapping layer: flat entries
// of octet-string values indexed by attribute type (spec.md §2 GLOSSARY).
//
// The shapes here mirror github.com/go-ldap/ldap/v3's Entry/EntryAttribute,
// the way github.com/trevex/terraform-provider-ldap consumes that package
// (see DESIGN.md). They are separate types (Attribute names its type
// Type, not Name, and carries no ByteValues), so converting to
// *ldap.Entry / []ldap.EntryAttribute at the boundary with the (out of
// scope) LDAP client is a field-by-field copy.
package ldapval

import "strings"

// Attribute is one LDAP attribute type and its ordered values. Value order
// follows "LDAP's value order" as referenced throughout spec.md §4 — this
// package treats that order as the order values were appended.
type Attribute struct {
	Type   string
	Values []string
}

// AttributeSet is an ordered, write-once-per-type collection of LDAP
// attributes, as built by a single toLDAPAttributes call (§4.D). Ordering
// follows the declared mapping order (§5 "Ordering").
type AttributeSet struct {
	order  []string
	byType map[string]*Attribute
}

// NewAttributeSet returns an empty attribute set.
func NewAttributeSet() *AttributeSet {
	return &AttributeSet{byType: map[string]*Attribute{}}
}

// Add appends a value to the named LDAP attribute type, creating it if
// this is the first value seen for that type. Attribute type matching is
// case-insensitive (§9).
func (s *AttributeSet) Add(attrType string, value string) {
	key := strings.ToLower(attrType)
	attr, ok := s.byType[key]
	if !ok {
		attr = &Attribute{Type: attrType}
		s.byType[key] = attr
		s.order = append(s.order, key)
	}
	attr.Values = append(attr.Values, value)
}

// Get returns the attribute for attrType, or nil if it was never added.
func (s *AttributeSet) Get(attrType string) *Attribute {
	return s.byType[strings.ToLower(attrType)]
}

// ForEach invokes callback on each attribute in the order it was first
// added to the set.
func (s *AttributeSet) ForEach(callback func(attr *Attribute)) {
	for _, key := range s.order {
		callback(s.byType[key])
	}
}

// Len returns the number of distinct LDAP attribute types in the set.
func (s *AttributeSet) Len() int {
	return len(s.order)
}

// Entry is an LDAP directory entry: a distinguished name plus its
// attributes, exactly the shape read back from the (out of scope) LDAP
// client as *ldap.Entry.
type Entry struct {
	DN         string
	Attributes []*Attribute
}

// GetAttribute returns the named attribute (case-insensitive), or nil if
// the entry does not carry it.
func (e *Entry) GetAttribute(attrType string) *Attribute {
	for _, a := range e.Attributes {
		if strings.EqualFold(a.Type, attrType) {
			return a
		}
	}
	return nil
}

// HasAttribute returns true if the entry carries a (possibly empty)
// attribute of the given type.
func (e *Entry) HasAttribute(attrType string) bool {
	return e.GetAttribute(attrType) != nil
}

// FirstValue returns the first value of attrType, or "" with ok=false if
// absent or empty.
func (e *Entry) FirstValue(attrType string) (string, bool) {
	a := e.GetAttribute(attrType)
	if a == nil || len(a.Values) == 0 {
		return "", false
	}
	return a.Values[0], true
}
