package mapping

import (
	"github.com/UnboundID/scim/filterql"
	"github.com/UnboundID/scim/ldapval"
	"github.com/UnboundID/scim/scimval"
	"github.com/UnboundID/scim/spec"
)

// SingularComplex binds one singular SCIM complex attribute to a fixed
// set of LDAP attributes, one per named sub-attribute (§4.C "Singular
// Complex").
type SingularComplex struct {
	attr *spec.Attribute
	subs []SubMapping
}

// NewSingularComplex builds a singular-complex attribute mapping from its
// ordered sub-attribute bindings.
func NewSingularComplex(attr *spec.Attribute, subs []SubMapping) *SingularComplex {
	return &SingularComplex{attr: attr, subs: subs}
}

func (m *SingularComplex) SCIMAttributeName() string { return m.attr.Name() }

func (m *SingularComplex) LDAPAttributeTypes() []string {
	types := make([]string, len(m.subs))
	for i, sub := range m.subs {
		types[i] = sub.ldapAttr
	}
	return types
}

func (m *SingularComplex) ToLDAPAttributes(resource *scimval.Resource, out *ldapval.AttributeSet) error {
	raw, ok := resource.Get(m.attr.Name())
	if !ok {
		return nil
	}
	values, ok := raw.(map[string]scimval.Simple)
	if !ok {
		return nil
	}
	for _, sub := range m.subs {
		val, ok := values[sub.attr.Name()]
		if !ok || val.IsUnassigned() {
			continue
		}
		ldapVal, err := sub.tr.ToLDAPValue(sub.attr, val.String())
		if err != nil {
			return err
		}
		out.Add(sub.ldapAttr, ldapVal)
	}
	return nil
}

func (m *SingularComplex) ToSCIMAttribute(entry *ldapval.Entry) (interface{}, bool, error) {
	values := map[string]scimval.Simple{}
	for _, sub := range m.subs {
		first, ok := entry.FirstValue(sub.ldapAttr)
		if !ok {
			continue
		}
		scimVal, err := sub.tr.ToSCIMValue(sub.attr, first)
		if err != nil {
			return nil, false, err
		}
		values[sub.attr.Name()] = scimval.NewSimple(scimVal)
	}
	if len(values) == 0 {
		return nil, false, nil
	}
	return values, true, nil
}

func (m *SingularComplex) ToLDAPFilter(node *filterql.Node) string {
	if !node.Path.HasSubAttribute() {
		// §4.C: "the filter must carry a sub-attribute path; otherwise it
		// is unsatisfiable."
		return alwaysFalse
	}
	for _, sub := range m.subs {
		if sub.attr.GoesBy(node.Path.SubName) {
			return compileComparison(node.Op, sub.ldapAttr, node.Value, sub.tr)
		}
	}
	return alwaysFalse
}

func (m *SingularComplex) ToLDAPSortKey() (string, bool) {
	// A complex attribute has no single value to sort by. Sort keys are
	// resolved by top-level attribute name only, so a sub-attribute sort
	// path is not resolved either.
	return "", false
}
