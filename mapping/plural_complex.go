package mapping

import (
	"strings"

	"github.com/UnboundID/scim/filterql"
	"github.com/UnboundID/scim/ldapval"
	"github.com/UnboundID/scim/scimval"
	"github.com/UnboundID/scim/spec"
)

// CanonicalValueGroup binds one canonical "type" value (e.g. "work",
// "home") of a multiValued complex attribute to its own set of LDAP
// attributes, since directory schemas commonly split a SCIM plural
// complex attribute into one LDAP attribute type per canonical value
// rather than one multi-valued LDAP group (§4.C "Plural Complex").
type CanonicalValueGroup struct {
	Tag  string
	Subs []SubMapping
}

func (g CanonicalValueGroup) subFor(name string) (SubMapping, bool) {
	for _, sub := range g.Subs {
		if sub.attr.GoesBy(name) {
			return sub, true
		}
	}
	return SubMapping{}, false
}

// PluralComplex binds one multiValued SCIM complex attribute to a set of
// canonical value groups, each carrying its own sub-attribute-to-LDAP
// bindings (§4.C "Plural Complex").
type PluralComplex struct {
	attr   *spec.Attribute
	groups []CanonicalValueGroup
}

// NewPluralComplex builds a plural-complex attribute mapping from its
// ordered canonical value groups.
func NewPluralComplex(attr *spec.Attribute, groups []CanonicalValueGroup) *PluralComplex {
	return &PluralComplex{attr: attr, groups: groups}
}

func (m *PluralComplex) SCIMAttributeName() string { return m.attr.Name() }

func (m *PluralComplex) LDAPAttributeTypes() []string {
	var types []string
	for _, g := range m.groups {
		for _, sub := range g.Subs {
			types = append(types, sub.ldapAttr)
		}
	}
	return types
}

func (m *PluralComplex) ToLDAPAttributes(resource *scimval.Resource, out *ldapval.AttributeSet) error {
	raw, ok := resource.Get(m.attr.Name())
	if !ok {
		return nil
	}
	list, ok := raw.([]scimval.PluralValue)
	if !ok {
		return nil
	}
	for _, item := range list {
		values, ok := item.Value.(map[string]scimval.Simple)
		if !ok {
			continue
		}
		group, ok := m.groupForTag(item.Type)
		if !ok {
			continue
		}
		for _, sub := range group.Subs {
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
	}
	return nil
}

func (m *PluralComplex) groupForTag(tag string) (CanonicalValueGroup, bool) {
	if tag == "" && len(m.groups) == 1 {
		return m.groups[0], true
	}
	for _, g := range m.groups {
		if strings.EqualFold(g.Tag, tag) {
			return g, true
		}
	}
	return CanonicalValueGroup{}, false
}

func (m *PluralComplex) ToSCIMAttribute(entry *ldapval.Entry) (interface{}, bool, error) {
	var list []scimval.PluralValue
	for _, g := range m.groups {
		values := map[string]scimval.Simple{}
		for _, sub := range g.Subs {
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
			continue
		}
		// Open Question decision #2 (DESIGN.md): primary=true is assigned
		// to the first canonical group, in declared order, that produced
		// a value.
		list = append(list, scimval.PluralValue{
			Value:   values,
			Type:    g.Tag,
			Primary: len(list) == 0,
		})
	}
	if len(list) == 0 {
		return nil, false, nil
	}
	return list, true, nil
}

func (m *PluralComplex) ToLDAPFilter(node *filterql.Node) string {
	if !node.Path.HasSubAttribute() {
		if node.Op == filterql.PR {
			return orPresence(m.allLDAPAttrs())
		}
		return alwaysFalse
	}

	if strings.EqualFold(node.Path.SubName, "type") {
		if node.Op == filterql.PR {
			return orPresence(m.allLDAPAttrs())
		}
		if node.Op == filterql.EQ {
			group, ok := m.groupForTag(node.Value)
			if !ok {
				return alwaysFalse
			}
			return orPresence(ldapAttrsOf(group.Subs))
		}
		return alwaysFalse
	}

	var fragments []string
	for _, g := range m.groups {
		sub, ok := g.subFor(node.Path.SubName)
		if !ok {
			continue
		}
		fragments = append(fragments, compileComparison(node.Op, sub.ldapAttr, node.Value, sub.tr))
	}
	return orFragments(fragments)
}

func (m *PluralComplex) ToLDAPSortKey() (string, bool) {
	return "", false
}

func (m *PluralComplex) allLDAPAttrs() []string {
	var attrs []string
	for _, g := range m.groups {
		attrs = append(attrs, ldapAttrsOf(g.Subs)...)
	}
	return attrs
}

func ldapAttrsOf(subs []SubMapping) []string {
	attrs := make([]string, len(subs))
	for i, sub := range subs {
		attrs[i] = sub.ldapAttr
	}
	return attrs
}

func orPresence(ldapAttrs []string) string {
	fragments := make([]string, len(ldapAttrs))
	for i, a := range ldapAttrs {
		fragments[i] = "(" + a + "=*)"
	}
	return orFragments(fragments)
}

func orFragments(fragments []string) string {
	switch len(fragments) {
	case 0:
		return alwaysFalse
	case 1:
		return fragments[0]
	default:
		return "(|" + strings.Join(fragments, "") + ")"
	}
}
