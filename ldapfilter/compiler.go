// Package ldapfilter implements the Filter Compiler of spec.md §4.F: it
// walks a SCIM filter AST (package filterql) and produces an RFC 4515
// LDAP filter string, delegating per-attribute translation to the
// resource mapping's attribute mappers (package mapping).
//
// Grounded on github.com/imulab/go-scim's pkg/v2/crud/eval.go
// walk-and-dispatch evaluator shape, retargeted from "evaluate against a
// live resource" to "compile to an LDAP filter string" (see DESIGN.md).
// Compilation is total per §4.F: no leaf ever raises an error; an unknown
// or unsupported attribute path compiles to the always-false filter
// "(|)" so a broader conjunction can still match.
package ldapfilter

import (
	"fmt"
	"strings"

	"github.com/UnboundID/scim/filterql"
	"github.com/UnboundID/scim/mapping"
	"github.com/UnboundID/scim/spec"
)

// alwaysFalse is the empty-OR LDAP filter that matches nothing (§9
// "AND/OR with zero children").
const alwaysFalse = "(|)"

// Compile walks node and produces its LDAP filter translation against
// rm's attribute mappers (§4.F). It never returns an error. An unknown
// filter operator kind, which filterql.Parse never produces, is passed to
// the mapper like any leaf and compiles to an always-false fragment; it
// is not reported to the caller.
func Compile(rm *mapping.ResourceMapping, node *filterql.Node) string {
	switch node.Op {
	case filterql.AND:
		return joinLogical("&", rm, node.Children)
	case filterql.OR:
		return joinLogical("|", rm, node.Children)
	default:
		return compileLeaf(rm, node)
	}
}

func joinLogical(symbol string, rm *mapping.ResourceMapping, children []*filterql.Node) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(symbol)
	for _, child := range children {
		sb.WriteString(Compile(rm, child))
	}
	sb.WriteByte(')')
	return sb.String()
}

// compileLeaf looks up the attribute mapper bound to the leaf's
// attribute path and delegates to its ToLDAPFilter; an unmapped
// attribute path compiles to the always-false filter, matching §7's
// "UnknownAttribute on filter... compiled to always-false, not an
// error" policy.
func compileLeaf(rm *mapping.ResourceMapping, node *filterql.Node) string {
	m, ok := rm.MapperForSCIMName(node.Path.Name)
	if !ok {
		return alwaysFalse
	}
	return m.ToLDAPFilter(node)
}

// CompileSortKey resolves the LDAP attribute that represents the sort
// order of the given top-level SCIM attribute name (§4.C
// "toLDAPSortKey"), or spec.ErrUnknownAttribute if the name is not
// mapped, or spec.ErrUnsupportedConversion if the mapped attribute
// cannot be used as a sort key (e.g. a complex or multiValued
// attribute).
func CompileSortKey(rm *mapping.ResourceMapping, scimAttrName string) (string, error) {
	m, ok := rm.MapperForSCIMName(scimAttrName)
	if !ok {
		return "", fmt.Errorf("%w: sort key %q is not a mapped attribute", spec.ErrUnknownAttribute, scimAttrName)
	}
	ldapAttr, ok := m.ToLDAPSortKey()
	if !ok {
		return "", fmt.Errorf("%w: %q cannot be used as a sort key", spec.ErrUnsupportedConversion, scimAttrName)
	}
	return ldapAttr, nil
}
