package mapping

import (
	"strings"

	"github.com/UnboundID/scim/filterql"
	"github.com/UnboundID/scim/ldapval"
	"github.com/UnboundID/scim/scimval"
	"github.com/UnboundID/scim/spec"
	"github.com/UnboundID/scim/transform"
)

// TagBinding binds one recognized type tag (e.g. "work", "home") of a
// multiValued simple attribute to the LDAP attribute that carries values
// of that type (§4.C "Plural Simple").
type TagBinding struct {
	Tag      string
	LDAPAttr string
}

// PluralSimple binds one multiValued SCIM simple attribute to one LDAP
// attribute per recognized type tag, plus an optional default LDAP
// attribute for untyped values (§4.C "Plural Simple").
type PluralSimple struct {
	attr        *spec.Attribute
	tags        []TagBinding
	defaultAttr string // empty when no default is declared
	tr          transform.Transform
}

// NewPluralSimple builds a plural-simple attribute mapping from its
// ordered tag bindings and optional default LDAP attribute.
func NewPluralSimple(attr *spec.Attribute, tags []TagBinding, defaultAttr string, tr transform.Transform) *PluralSimple {
	return &PluralSimple{attr: attr, tags: tags, defaultAttr: defaultAttr, tr: tr}
}

func (m *PluralSimple) SCIMAttributeName() string { return m.attr.Name() }

func (m *PluralSimple) LDAPAttributeTypes() []string {
	types := make([]string, 0, len(m.tags)+1)
	for _, tb := range m.tags {
		types = append(types, tb.LDAPAttr)
	}
	if m.defaultAttr != "" {
		types = append(types, m.defaultAttr)
	}
	return types
}

func (m *PluralSimple) ldapAttrForTag(tag string) (string, bool) {
	if tag == "" {
		if m.defaultAttr != "" {
			return m.defaultAttr, true
		}
		return "", false
	}
	for _, tb := range m.tags {
		if strings.EqualFold(tb.Tag, tag) {
			return tb.LDAPAttr, true
		}
	}
	if m.defaultAttr != "" {
		return m.defaultAttr, true
	}
	return "", false
}

func (m *PluralSimple) ToLDAPAttributes(resource *scimval.Resource, out *ldapval.AttributeSet) error {
	raw, ok := resource.Get(m.attr.Name())
	if !ok {
		return nil
	}
	list, ok := raw.([]scimval.PluralValue)
	if !ok {
		return nil
	}
	for _, item := range list {
		simple, ok := item.Value.(scimval.Simple)
		if !ok || simple.IsUnassigned() {
			continue
		}
		ldapAttr, ok := m.ldapAttrForTag(item.Type)
		if !ok {
			// No recognized type tag and no default LDAP attribute
			// declared: the value is dropped (§4.C "Plural Simple" write).
			continue
		}
		ldapVal, err := m.tr.ToLDAPValue(m.attr, simple.String())
		if err != nil {
			return err
		}
		out.Add(ldapAttr, ldapVal)
	}
	return nil
}

func (m *PluralSimple) ToSCIMAttribute(entry *ldapval.Entry) (interface{}, bool, error) {
	var list []scimval.PluralValue

	emit := func(ldapAttr, tag string) error {
		a := entry.GetAttribute(ldapAttr)
		if a == nil {
			return nil
		}
		for _, v := range a.Values {
			scimVal, err := m.tr.ToSCIMValue(m.attr, v)
			if err != nil {
				return err
			}
			list = append(list, scimval.PluralValue{
				Value:   scimval.NewSimple(scimVal),
				Type:    tag,
				Primary: len(list) == 0,
			})
		}
		return nil
	}

	// Declared tag order first (§5 "Ordering"), then the default
	// attribute's untyped values.
	for _, tb := range m.tags {
		if err := emit(tb.LDAPAttr, tb.Tag); err != nil {
			return nil, false, err
		}
	}
	if m.defaultAttr != "" {
		if err := emit(m.defaultAttr, ""); err != nil {
			return nil, false, err
		}
	}

	if len(list) == 0 {
		return nil, false, nil
	}
	return list, true, nil
}

func (m *PluralSimple) ToLDAPFilter(node *filterql.Node) string {
	if node.Path.HasSubAttribute() && !strings.EqualFold(node.Path.SubName, "value") && !strings.EqualFold(node.Path.SubName, "type") {
		return alwaysFalse
	}

	if node.Path.HasSubAttribute() && strings.EqualFold(node.Path.SubName, "type") {
		if node.Op == filterql.PR {
			return orPresence(m.allLDAPAttrs())
		}
		if node.Op == filterql.EQ {
			ldapAttr, ok := m.ldapAttrForTag(node.Value)
			if !ok {
				return alwaysFalse
			}
			return "(" + ldapAttr + "=*)"
		}
		return alwaysFalse
	}

	// Top-level filter, or an explicit "value" sub-attribute filter:
	// identical behavior (§4.C "Plural Simple" filter).
	if node.Op == filterql.PR {
		return orPresence(m.allLDAPAttrs())
	}
	fragments := make([]string, 0, len(m.allLDAPAttrs()))
	for _, ldapAttr := range m.allLDAPAttrs() {
		fragments = append(fragments, compileComparison(node.Op, ldapAttr, node.Value, m.tr))
	}
	return orFragments(fragments)
}

func (m *PluralSimple) ToLDAPSortKey() (string, bool) {
	// Sorting by a multiValued attribute is not well defined (§4.C);
	// this mapper never offers itself as a sort key.
	return "", false
}

func (m *PluralSimple) allLDAPAttrs() []string {
	return m.LDAPAttributeTypes()
}
