package transform

import (
	"strings"

	"github.com/go-ldap/ldap/v3"

	"github.com/UnboundID/scim/spec"
)

// TelephoneNumber is the identity transformation for phone numbers, except
// that ToLDAPFilterValue strips spaces and dashes first because some
// directory servers require canonical form for a match to succeed (§4.B).
type TelephoneNumber struct{}

func (TelephoneNumber) Name() string { return "telephoneNumber" }

func (TelephoneNumber) Supports(attr *spec.Attribute) bool {
	return attr.Type() == spec.TypeString
}

func (t TelephoneNumber) ToLDAPValue(attr *spec.Attribute, scimValue string) (string, error) {
	if !t.Supports(attr) {
		return "", unsupported(t.Name(), attr)
	}
	return scimValue, nil
}

func (t TelephoneNumber) ToSCIMValue(attr *spec.Attribute, ldapValue string) (string, error) {
	if !t.Supports(attr) {
		return "", unsupported(t.Name(), attr)
	}
	return ldapValue, nil
}

func (TelephoneNumber) ToLDAPFilterValue(raw string) string {
	canonical := strings.NewReplacer(" ", "", "-", "").Replace(raw)
	return ldap.EscapeFilter(canonical)
}
