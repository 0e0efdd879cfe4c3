package transform

import (
	"fmt"
	"time"

	"github.com/go-ldap/ldap/v3"

	"github.com/UnboundID/scim/spec"
)

// ldapGeneralizedTimeLayout is RFC 4517's GeneralizedTime with millisecond
// precision, always rendered in UTC ("Z" designator): YYYYMMDDHHMMSS.sssZ.
const ldapGeneralizedTimeLayout = "20060102150405.000Z"

// GeneralizedTime converts between SCIM's ISO-8601 dateTime representation
// and LDAP's generalized-time syntax, preserving the instant in UTC
// (§4.B).
type GeneralizedTime struct{}

func (GeneralizedTime) Name() string { return "generalizedTime" }

func (GeneralizedTime) Supports(attr *spec.Attribute) bool {
	return attr.Type() == spec.TypeDateTime
}

func (t GeneralizedTime) ToLDAPValue(attr *spec.Attribute, scimValue string) (string, error) {
	if !t.Supports(attr) {
		return "", unsupported(t.Name(), attr)
	}
	parsed, err := time.Parse(time.RFC3339Nano, scimValue)
	if err != nil {
		return "", fmt.Errorf("%w: malformed ISO-8601 dateTime %q: %s", spec.ErrUnsupportedConversion, scimValue, err)
	}
	return parsed.UTC().Format(ldapGeneralizedTimeLayout), nil
}

func (t GeneralizedTime) ToSCIMValue(attr *spec.Attribute, ldapValue string) (string, error) {
	if !t.Supports(attr) {
		return "", unsupported(t.Name(), attr)
	}
	parsed, err := time.Parse(ldapGeneralizedTimeLayout, ldapValue)
	if err != nil {
		return "", fmt.Errorf("%w: malformed generalized time %q: %s", spec.ErrUnsupportedConversion, ldapValue, err)
	}
	return parsed.UTC().Format("2006-01-02T15:04:05.000Z"), nil
}

func (GeneralizedTime) ToLDAPFilterValue(raw string) string {
	return ldap.EscapeFilter(raw)
}
