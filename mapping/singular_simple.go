package mapping

import (
	"github.com/UnboundID/scim/filterql"
	"github.com/UnboundID/scim/ldapval"
	"github.com/UnboundID/scim/scimval"
	"github.com/UnboundID/scim/spec"
	"github.com/UnboundID/scim/transform"
)

// SingularSimple binds one singular SCIM simple attribute to one LDAP
// attribute under a transformation (§4.C "Singular Simple").
type SingularSimple struct {
	attr     *spec.Attribute
	ldapAttr string
	tr       transform.Transform
}

// NewSingularSimple builds a singular-simple attribute mapping.
func NewSingularSimple(attr *spec.Attribute, ldapAttr string, tr transform.Transform) *SingularSimple {
	return &SingularSimple{attr: attr, ldapAttr: ldapAttr, tr: tr}
}

func (m *SingularSimple) SCIMAttributeName() string { return m.attr.Name() }

func (m *SingularSimple) LDAPAttributeTypes() []string { return []string{m.ldapAttr} }

func (m *SingularSimple) ToLDAPAttributes(resource *scimval.Resource, out *ldapval.AttributeSet) error {
	raw, ok := resource.Get(m.attr.Name())
	if !ok {
		return nil
	}
	simple, ok := raw.(scimval.Simple)
	if !ok || simple.IsUnassigned() {
		return nil
	}
	ldapVal, err := m.tr.ToLDAPValue(m.attr, simple.String())
	if err != nil {
		return err
	}
	out.Add(m.ldapAttr, ldapVal)
	return nil
}

func (m *SingularSimple) ToSCIMAttribute(entry *ldapval.Entry) (interface{}, bool, error) {
	first, ok := entry.FirstValue(m.ldapAttr)
	if !ok {
		return nil, false, nil
	}
	scimVal, err := m.tr.ToSCIMValue(m.attr, first)
	if err != nil {
		return nil, false, err
	}
	return scimval.NewSimple(scimVal), true, nil
}

func (m *SingularSimple) ToLDAPFilter(node *filterql.Node) string {
	if node.Path.HasSubAttribute() {
		// A singular simple attribute has no sub-attributes to target.
		return alwaysFalse
	}
	return compileComparison(node.Op, m.ldapAttr, node.Value, m.tr)
}

func (m *SingularSimple) ToLDAPSortKey() (string, bool) {
	return m.ldapAttr, true
}
