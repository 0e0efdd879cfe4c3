// Package mapping implements the attribute mappers and resource mapper of
// spec.md §4.C/§4.D: the component that binds SCIM attributes to LDAP
// attribute types and implements the four mapping operations.
//
// The four mapper kinds are a closed tagged sum, not a class hierarchy
// (§9 "Polymorphic mappers"): SingularSimple, SingularComplex,
// PluralSimple and PluralComplex each implement the Mapper interface, and
// ResourceMapping dispatches to them by declared order, never by type
// switch on a caller-visible hierarchy.
//
// Grounded on github.com/imulab/go-scim's pkg/v2/db.DB plain-interface
// style and pkg/v2/crud/eval.go's visitor/dispatch pattern, generalized
// from "evaluate one filter against a live resource" to "bind one
// attribute to LDAP and translate filters naming it" (see DESIGN.md).
package mapping

import (
	"fmt"

	"github.com/UnboundID/scim/filterql"
	"github.com/UnboundID/scim/ldapval"
	"github.com/UnboundID/scim/scimval"
	"github.com/UnboundID/scim/spec"
	"github.com/UnboundID/scim/transform"
)

// Mapper binds one SCIM attribute to one or more LDAP attributes and
// implements the four mapping operations of §4.C.
type Mapper interface {
	// SCIMAttributeName returns the (unqualified) SCIM attribute name this
	// mapper is bound to, used by ResourceMapping to dispatch by name.
	SCIMAttributeName() string
	// LDAPAttributeTypes returns the set of LDAP attribute types this
	// mapper reads and writes.
	LDAPAttributeTypes() []string
	// ToLDAPAttributes appends LDAP attributes to out for this SCIM
	// attribute if present on resource.
	ToLDAPAttributes(resource *scimval.Resource, out *ldapval.AttributeSet) error
	// ToSCIMAttribute assembles this mapper's SCIM attribute value from
	// entry. ok is false when nothing maps (§4.C).
	ToSCIMAttribute(entry *ldapval.Entry) (value interface{}, ok bool, err error)
	// ToLDAPFilter translates a filter leaf node whose attribute path
	// names this mapper's SCIM attribute into an LDAP filter fragment in
	// RFC 4515 string form. Never raises: unsupported combinations are
	// compiled to the always-false filter "(|)" (§4.F).
	ToLDAPFilter(node *filterql.Node) string
	// ToLDAPSortKey returns the LDAP attribute type that represents this
	// SCIM attribute's sort order, or ok=false if this mapper's attribute
	// cannot be used as a sort key.
	ToLDAPSortKey() (ldapAttr string, ok bool)
}

// alwaysFalse is the empty-OR LDAP filter that matches nothing (§9
// "AND/OR with zero children").
const alwaysFalse = "(|)"

// compileComparison implements the shared "Filter translation for simple
// operations" table of §4.C, used by every mapper kind once it has
// resolved a concrete LDAP attribute type and value transformation for a
// leaf node.
func compileComparison(op filterql.Op, ldapAttr string, rawValue string, t transform.Transform) string {
	if t.Name() == "caseExactMatch" && (op == filterql.CO || op == filterql.SW) {
		// SPEC_FULL.md supplemented feature #1: DN-valued attributes never
		// support substring matching.
		return alwaysFalse
	}

	switch op {
	case filterql.PR:
		return fmt.Sprintf("(%s=*)", ldapAttr)
	case filterql.EQ:
		return fmt.Sprintf("(%s=%s)", ldapAttr, t.ToLDAPFilterValue(rawValue))
	case filterql.CO:
		return fmt.Sprintf("(%s=*%s*)", ldapAttr, t.ToLDAPFilterValue(rawValue))
	case filterql.SW:
		return fmt.Sprintf("(%s=%s*)", ldapAttr, t.ToLDAPFilterValue(rawValue))
	case filterql.GT, filterql.GE:
		// SCIM GT is conservatively widened to LDAP's >= (§4.C, §9 Open
		// Question: a correct implementation would post-filter for strict
		// greater-than; that post-filtering lives outside this core).
		return fmt.Sprintf("(%s>=%s)", ldapAttr, t.ToLDAPFilterValue(rawValue))
	case filterql.LT, filterql.LE:
		return fmt.Sprintf("(%s<=%s)", ldapAttr, t.ToLDAPFilterValue(rawValue))
	default:
		return alwaysFalse
	}
}

// SubMapping binds one SCIM sub-attribute to one LDAP attribute under a
// transformation; the building block shared by SingularComplex and
// PluralComplex.
type SubMapping struct {
	attr     *spec.Attribute // the sub-attribute descriptor
	ldapAttr string
	tr       transform.Transform
}

// NewSubMapping constructs one sub-attribute binding within a complex
// attribute mapping.
func NewSubMapping(attr *spec.Attribute, ldapAttr string, tr transform.Transform) SubMapping {
	return SubMapping{attr: attr, ldapAttr: ldapAttr, tr: tr}
}
