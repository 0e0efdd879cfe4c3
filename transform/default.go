package transform

import (
	"github.com/go-ldap/ldap/v3"

	"github.com/UnboundID/scim/spec"
)

// Default is the identity transformation for string, boolean, integer and
// binary attributes (§4.B). For binary attributes the SCIM side is
// base64-encoded and the LDAP side carries the same base64 text (raw byte
// transport at the directory boundary is the LDAP client's concern, out
// of scope per §1).
type Default struct{}

func (Default) Name() string { return "default" }

func (Default) Supports(attr *spec.Attribute) bool {
	switch attr.Type() {
	case spec.TypeString, spec.TypeBoolean, spec.TypeInteger, spec.TypeBinary:
		return true
	default:
		return false
	}
}

func (t Default) ToLDAPValue(attr *spec.Attribute, scimValue string) (string, error) {
	if !t.Supports(attr) {
		return "", unsupported(t.Name(), attr)
	}
	return scimValue, nil
}

func (t Default) ToSCIMValue(attr *spec.Attribute, ldapValue string) (string, error) {
	if !t.Supports(attr) {
		return "", unsupported(t.Name(), attr)
	}
	return ldapValue, nil
}

// ToLDAPFilterValue escapes the RFC 4515 special characters (*, (, ), \,
// NUL) so the value can be embedded literally in a compiled LDAP filter.
func (Default) ToLDAPFilterValue(raw string) string {
	return ldap.EscapeFilter(raw)
}
