package mapping

import (
	"fmt"
	"strings"

	"github.com/UnboundID/scim/ldapval"
	"github.com/UnboundID/scim/scimval"
	"github.com/UnboundID/scim/spec"
)

// ResourceMapping ties one SCIM resource descriptor to the structural
// object class set, DN template and ordered attribute mappers that
// together implement the four mapping operations for that resource type
// (§4.D).
//
// ResourceMapping is built once at startup from configuration (§6) and is
// thereafter immutable; it is safe for concurrent read access by any
// number of workers (§5).
type ResourceMapping struct {
	resourceName  string
	objectClasses []string
	dnTemplate    *dnTemplate
	mappers       []Mapper
}

// NewResourceMapping builds a resource mapping from its structural object
// classes, DN template string (SPEC_FULL.md "Supplemented features" #3)
// and ordered attribute mappers. It returns spec.ErrInternal if two
// mappers claim the same LDAP attribute type, violating §3's "every LDAP
// attribute... is owned by exactly one attribute mapping" invariant.
func NewResourceMapping(resourceName string, objectClasses []string, dnTemplateStr string, mappers []Mapper) (*ResourceMapping, error) {
	owned := map[string]string{}
	for _, m := range mappers {
		for _, ldapAttr := range m.LDAPAttributeTypes() {
			key := strings.ToLower(ldapAttr)
			if owner, ok := owned[key]; ok && owner != m.SCIMAttributeName() {
				return nil, fmt.Errorf("%w: LDAP attribute %q is mapped by both %q and %q",
					spec.ErrInternal, ldapAttr, owner, m.SCIMAttributeName())
			}
			owned[key] = m.SCIMAttributeName()
		}
	}

	tmpl, err := parseDNTemplate(dnTemplateStr)
	if err != nil {
		return nil, err
	}

	return &ResourceMapping{
		resourceName:  resourceName,
		objectClasses: objectClasses,
		dnTemplate:    tmpl,
		mappers:       mappers,
	}, nil
}

// ResourceName returns the SCIM resource type name this mapping serves.
func (rm *ResourceMapping) ResourceName() string { return rm.resourceName }

// MapperForSCIMName returns the attribute mapper bound to the given
// top-level SCIM attribute name (case-insensitive), or ok=false.
func (rm *ResourceMapping) MapperForSCIMName(name string) (Mapper, bool) {
	for _, m := range rm.mappers {
		if strings.EqualFold(m.SCIMAttributeName(), name) {
			return m, true
		}
	}
	return nil, false
}

// ForEachMapper invokes callback on every attribute mapper in declared
// order (§5 "Ordering").
func (rm *ResourceMapping) ForEachMapper(callback func(m Mapper)) {
	for _, m := range rm.mappers {
		callback(m)
	}
}

// ToLDAPAttributes concatenates the output of every attribute mapper in
// declared order, then appends the configured structural object class
// set (§4.D).
func (rm *ResourceMapping) ToLDAPAttributes(resource *scimval.Resource) (*ldapval.AttributeSet, error) {
	out := ldapval.NewAttributeSet()
	for _, m := range rm.mappers {
		if err := m.ToLDAPAttributes(resource, out); err != nil {
			return nil, err
		}
	}
	if len(rm.objectClasses) > 0 {
		for _, oc := range rm.objectClasses {
			out.Add("objectClass", oc)
		}
	}
	return out, nil
}

// ToSCIMAttributes invokes ToSCIMAttribute on every mapper whose SCIM
// attribute is named by projection (or every mapper, if projection is
// empty), in declared order, and returns the non-null results (§4.D).
func (rm *ResourceMapping) ToSCIMAttributes(entry *ldapval.Entry, projection []string) (*scimval.Resource, error) {
	resource := scimval.NewResource()
	for _, m := range rm.mappers {
		if len(projection) > 0 && !containsFold(projection, m.SCIMAttributeName()) {
			continue
		}
		value, ok, err := m.ToSCIMAttribute(entry)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		resource.Set(m.SCIMAttributeName(), value)
	}
	return resource, nil
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// ConstructDN resolves the resource mapping's DN template against the
// resource's top-level attribute values (SPEC_FULL.md "Supplemented
// features" #3); the named attribute need not have a mapper. Placeholders are resolved from the resource's own,
// not-yet-transformed SCIM values, since the DN is a directory-side
// identifier built from SCIM input at create time.
func (rm *ResourceMapping) ConstructDN(resource *scimval.Resource) (string, error) {
	return rm.dnTemplate.resolve(resource)
}

// dnTemplate is a minimal "{attrName}"-placeholder DN template grammar
// (SPEC_FULL.md "Supplemented features" #3, DESIGN.md Open Question
// decision #4). Literal text passes through unchanged; each {name}
// placeholder is replaced with the string form of the named top-level
// SCIM attribute's Simple value; a complex or plural value does not
// resolve.
type dnTemplate struct {
	raw    string
	fields []dnField
}

type dnField struct {
	literal       string // meaningful when !isPlaceholder
	attr          string // meaningful when isPlaceholder
	isPlaceholder bool
}

func parseDNTemplate(raw string) (*dnTemplate, error) {
	var fields []dnField
	var lit strings.Builder
	i := 0
	for i < len(raw) {
		c := raw[i]
		if c == '{' {
			end := strings.IndexByte(raw[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated placeholder in DN template %q", spec.ErrInvalidValue, raw)
			}
			if lit.Len() > 0 {
				fields = append(fields, dnField{literal: lit.String()})
				lit.Reset()
			}
			name := raw[i+1 : i+end]
			if name == "" {
				return nil, fmt.Errorf("%w: empty placeholder in DN template %q", spec.ErrInvalidValue, raw)
			}
			fields = append(fields, dnField{attr: name, isPlaceholder: true})
			i += end + 1
			continue
		}
		lit.WriteByte(c)
		i++
	}
	if lit.Len() > 0 {
		fields = append(fields, dnField{literal: lit.String()})
	}
	return &dnTemplate{raw: raw, fields: fields}, nil
}

func (t *dnTemplate) resolve(resource *scimval.Resource) (string, error) {
	var sb strings.Builder
	for _, f := range t.fields {
		if !f.isPlaceholder {
			sb.WriteString(f.literal)
			continue
		}
		raw, ok := resource.Get(f.attr)
		if !ok {
			return "", fmt.Errorf("%w: DN template placeholder %q in %q has no mapped value", spec.ErrInvalidValue, f.attr, t.raw)
		}
		simple, ok := raw.(scimval.Simple)
		if !ok || simple.IsUnassigned() {
			return "", fmt.Errorf("%w: DN template placeholder %q in %q resolved to an unassigned value", spec.ErrInvalidValue, f.attr, t.raw)
		}
		sb.WriteString(simple.String())
	}
	return sb.String(), nil
}
