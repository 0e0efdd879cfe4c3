package transform

import (
	"strings"

	"github.com/go-ldap/ldap/v3"
	"golang.org/x/text/unicode/norm"

	"github.com/UnboundID/scim/spec"
)

// PostalAddress converts between SCIM's newline-delimited formatted
// address and LDAP's RFC 4517 Postal Address syntax, which delimits lines
// with "$" and escapes "\" as "\5C" and "$" as "\24" (§4.B, §8 property 6).
//
// Decoding tolerates unknown "\xx" escape sequences by passing them
// through unchanged, matching RFC 4517's guidance that unrecognized
// escapes are not an error condition for a lenient reader.
//
// The SCIM-side string is normalized to Unicode NFC before escaping, so
// that directories comparing postal addresses byte-for-byte don't treat
// two differently-composed renderings of the same text as distinct
// values.
type PostalAddress struct{}

func (PostalAddress) Name() string { return "postalAddress" }

func (PostalAddress) Supports(attr *spec.Attribute) bool {
	return attr.Type() == spec.TypeString
}

func (t PostalAddress) ToLDAPValue(attr *spec.Attribute, scimValue string) (string, error) {
	if !t.Supports(attr) {
		return "", unsupported(t.Name(), attr)
	}
	lines := strings.Split(norm.NFC.String(scimValue), "\n")
	for i, line := range lines {
		line = strings.ReplaceAll(line, `\`, `\5C`)
		line = strings.ReplaceAll(line, `$`, `\24`)
		lines[i] = line
	}
	return strings.Join(lines, "$"), nil
}

func (t PostalAddress) ToSCIMValue(attr *spec.Attribute, ldapValue string) (string, error) {
	if !t.Supports(attr) {
		return "", unsupported(t.Name(), attr)
	}

	var lines []string
	var cur strings.Builder
	for i := 0; i < len(ldapValue); i++ {
		c := ldapValue[i]
		switch {
		case c == '\\' && i+2 < len(ldapValue):
			switch ldapValue[i+1 : i+3] {
			case "5C", "5c":
				cur.WriteByte('\\')
				i += 2
			case "24":
				cur.WriteByte('$')
				i += 2
			default:
				// Unknown escape: pass through unchanged.
				cur.WriteByte(c)
			}
		case c == '$':
			lines = append(lines, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	lines = append(lines, cur.String())

	return strings.Join(lines, "\n"), nil
}

func (PostalAddress) ToLDAPFilterValue(raw string) string {
	return ldap.EscapeFilter(raw)
}
