package transform

import (
	"github.com/go-ldap/ldap/v3"

	"github.com/UnboundID/scim/spec"
)

// CaseExactMatch is the supplemented transformation for DN-valued LDAP
// attributes (e.g. "manager", "member") — SPEC_FULL.md "Supplemented
// features" #1. It is the identity transformation on the value itself;
// its distinguishing behavior lives in the filter compiler, which must
// refuse substring matches (CO/SW) against a caseExactMatch-transformed
// mapping rather than in this type's conversion methods.
type CaseExactMatch struct{}

func (CaseExactMatch) Name() string { return "caseExactMatch" }

func (CaseExactMatch) Supports(attr *spec.Attribute) bool {
	return attr.Type() == spec.TypeString
}

func (t CaseExactMatch) ToLDAPValue(attr *spec.Attribute, scimValue string) (string, error) {
	if !t.Supports(attr) {
		return "", unsupported(t.Name(), attr)
	}
	return scimValue, nil
}

func (t CaseExactMatch) ToSCIMValue(attr *spec.Attribute, ldapValue string) (string, error) {
	if !t.Supports(attr) {
		return "", unsupported(t.Name(), attr)
	}
	return ldapValue, nil
}

func (CaseExactMatch) ToLDAPFilterValue(raw string) string {
	return ldap.EscapeFilter(raw)
}
