package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/UnboundID/scim/filterql"
	"github.com/UnboundID/scim/ldapval"
	"github.com/UnboundID/scim/scimval"
	"github.com/UnboundID/scim/spec"
	"github.com/UnboundID/scim/transform"
)

func TestMapping(t *testing.T) {
	suite.Run(t, new(MappingTestSuite))
}

type MappingTestSuite struct {
	suite.Suite
	tr *transform.Registry
}

func (s *MappingTestSuite) SetupTest() {
	s.tr = transform.NewRegistry()
}

func (s *MappingTestSuite) defaultTransform() transform.Transform {
	t, err := s.tr.Lookup("default")
	require.NoError(s.T(), err)
	return t
}

// U1: SCIM {userName:"bjensen", name:{familyName:"Jensen", givenName:"Barbara"}}
// maps to LDAP uid=bjensen, sn=Jensen, givenName=Barbara and back (§8 U1).
func (s *MappingTestSuite) TestU1SimpleUser() {
	userName := spec.NewSimpleAttribute("", "userName", spec.TypeString, false)
	name := spec.NewComplexAttribute("", "name", false, []*spec.Attribute{
		spec.NewSimpleAttribute("", "familyName", spec.TypeString, false),
		spec.NewSimpleAttribute("", "givenName", spec.TypeString, false),
	})

	uidMapper := NewSingularSimple(userName, "uid", s.defaultTransform())
	nameMapper := NewSingularComplex(name, []SubMapping{
		NewSubMapping(name.SubAttributeForName("familyName"), "sn", s.defaultTransform()),
		NewSubMapping(name.SubAttributeForName("givenName"), "givenName", s.defaultTransform()),
	})

	rm, err := NewResourceMapping("User", []string{"inetOrgPerson"}, "uid={userName},ou=People,dc=example,dc=com",
		[]Mapper{uidMapper, nameMapper})
	require.NoError(s.T(), err)

	resource := scimval.NewResource()
	resource.Set("userName", scimval.NewSimple("bjensen"))
	resource.Set("name", map[string]scimval.Simple{
		"familyName": scimval.NewSimple("Jensen"),
		"givenName":  scimval.NewSimple("Barbara"),
	})

	attrs, err := rm.ToLDAPAttributes(resource)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"bjensen"}, attrs.Get("uid").Values)
	assert.Equal(s.T(), []string{"Jensen"}, attrs.Get("sn").Values)
	assert.Equal(s.T(), []string{"Barbara"}, attrs.Get("givenName").Values)
	assert.Equal(s.T(), []string{"inetOrgPerson"}, attrs.Get("objectClass").Values)

	dn, err := rm.ConstructDN(resource)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "uid=bjensen,ou=People,dc=example,dc=com", dn)

	entry := &ldapval.Entry{
		DN: dn,
		Attributes: []*ldapval.Attribute{
			{Type: "uid", Values: []string{"bjensen"}},
			{Type: "sn", Values: []string{"Jensen"}},
			{Type: "givenName", Values: []string{"Barbara"}},
		},
	}
	back, err := rm.ToSCIMAttributes(entry, nil)
	require.NoError(s.T(), err)

	rawUserName, ok := back.Get("userName")
	require.True(s.T(), ok)
	assert.Equal(s.T(), "bjensen", rawUserName.(scimval.Simple).String())

	rawName, ok := back.Get("name")
	require.True(s.T(), ok)
	assert.Equal(s.T(), "Jensen", rawName.(map[string]scimval.Simple)["familyName"].String())
	assert.Equal(s.T(), "Barbara", rawName.(map[string]scimval.Simple)["givenName"].String())
}

// U2: SCIM emails [{value:"a@x", type:"work", primary:true}, {value:"b@y",
// type:"home"}] with mapping work->mail, home->homeEmail produces
// mail:a@x and homeEmail:b@y; reversing recovers the same set; primary
// lands on the entry emitted first by declared tag order (§8 U2).
func (s *MappingTestSuite) TestU2PluralEmails() {
	emails := spec.NewSimpleAttribute("", "emails", spec.TypeString, true, "work", "home")
	mapper := NewPluralSimple(emails, []TagBinding{
		{Tag: "work", LDAPAttr: "mail"},
		{Tag: "home", LDAPAttr: "homeEmail"},
	}, "", s.defaultTransform())

	rm, err := NewResourceMapping("User", nil, "uid={userName}", []Mapper{mapper})
	require.NoError(s.T(), err)

	resource := scimval.NewResource()
	resource.Set("emails", []scimval.PluralValue{
		{Value: scimval.NewSimple("a@x"), Type: "work", Primary: true},
		{Value: scimval.NewSimple("b@y"), Type: "home"},
	})

	attrs, err := rm.ToLDAPAttributes(resource)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"a@x"}, attrs.Get("mail").Values)
	assert.Equal(s.T(), []string{"b@y"}, attrs.Get("homeEmail").Values)

	entry := &ldapval.Entry{Attributes: []*ldapval.Attribute{
		{Type: "mail", Values: []string{"a@x"}},
		{Type: "homeEmail", Values: []string{"b@y"}},
	}}
	back, err := rm.ToSCIMAttributes(entry, nil)
	require.NoError(s.T(), err)

	raw, ok := back.Get("emails")
	require.True(s.T(), ok)
	list := raw.([]scimval.PluralValue)
	require.Len(s.T(), list, 2)
	assert.Equal(s.T(), "a@x", list[0].Value.(scimval.Simple).String())
	assert.Equal(s.T(), "work", list[0].Type)
	assert.True(s.T(), list[0].Primary)
	assert.Equal(s.T(), "b@y", list[1].Value.(scimval.Simple).String())
	assert.False(s.T(), list[1].Primary)
}

// U3: SCIM address {formatted:"100 Main St\nCity, ST 00000", type:"work"}
// with postalAddress transformation yields LDAP postalAddress:
// "100 Main St$City, ST 00000"; round-trip recovers \n (§8 U3).
func (s *MappingTestSuite) TestU3PostalAddress() {
	postal, err := s.tr.Lookup("postalAddress")
	require.NoError(s.T(), err)

	formatted := spec.NewSimpleAttribute("", "formatted", spec.TypeString, false)
	addresses := spec.NewComplexAttribute("", "addresses", true, []*spec.Attribute{formatted}, "work", "home")

	group := CanonicalValueGroup{Tag: "work", Subs: []SubMapping{
		NewSubMapping(formatted, "postalAddress", postal),
	}}
	mapper := NewPluralComplex(addresses, []CanonicalValueGroup{group})

	rm, err := NewResourceMapping("User", nil, "uid={userName}", []Mapper{mapper})
	require.NoError(s.T(), err)

	resource := scimval.NewResource()
	resource.Set("addresses", []scimval.PluralValue{
		{Type: "work", Value: map[string]scimval.Simple{
			"formatted": scimval.NewSimple("100 Main St\nCity, ST 00000"),
		}},
	})

	attrs, err := rm.ToLDAPAttributes(resource)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"100 Main St$City, ST 00000"}, attrs.Get("postalAddress").Values)

	entry := &ldapval.Entry{Attributes: []*ldapval.Attribute{
		{Type: "postalAddress", Values: []string{"100 Main St$City, ST 00000"}},
	}}
	back, err := rm.ToSCIMAttributes(entry, nil)
	require.NoError(s.T(), err)

	raw, ok := back.Get("addresses")
	require.True(s.T(), ok)
	list := raw.([]scimval.PluralValue)
	require.Len(s.T(), list, 1)
	assert.Equal(s.T(), "work", list[0].Type)
	assert.True(s.T(), list[0].Primary)
	sub := list[0].Value.(map[string]scimval.Simple)
	assert.Equal(s.T(), "100 Main St\nCity, ST 00000", sub["formatted"].String())
}

func (s *MappingTestSuite) TestSingularComplexFilterWithoutSubAttributeIsAlwaysFalse() {
	name := spec.NewComplexAttribute("", "name", false, []*spec.Attribute{
		spec.NewSimpleAttribute("", "familyName", spec.TypeString, false),
	})
	mapper := NewSingularComplex(name, []SubMapping{
		NewSubMapping(name.SubAttributeForName("familyName"), "sn", s.defaultTransform()),
	})

	node := filterql.NewComparison(filterql.EQ, filterql.AttributePath{Name: "name"}, "Jensen")
	assert.Equal(s.T(), "(|)", mapper.ToLDAPFilter(node))
}

func (s *MappingTestSuite) TestPluralSimpleUntypedValueUsesDefaultAttribute() {
	nick := spec.NewSimpleAttribute("", "nicknames", spec.TypeString, true)
	mapper := NewPluralSimple(nick, nil, "nickname", s.defaultTransform())

	resource := scimval.NewResource()
	resource.Set("nicknames", []scimval.PluralValue{
		{Value: scimval.NewSimple("Barb")},
	})

	out := ldapval.NewAttributeSet()
	require.NoError(s.T(), mapper.ToLDAPAttributes(resource, out))
	assert.Equal(s.T(), []string{"Barb"}, out.Get("nickname").Values)

	entry := &ldapval.Entry{Attributes: []*ldapval.Attribute{
		{Type: "nickname", Values: []string{"Barb"}},
	}}
	val, ok, err := mapper.ToSCIMAttribute(entry)
	require.NoError(s.T(), err)
	require.True(s.T(), ok)
	list := val.([]scimval.PluralValue)
	require.Len(s.T(), list, 1)
	assert.Equal(s.T(), "", list[0].Type)
	assert.True(s.T(), list[0].Primary)
}

func (s *MappingTestSuite) TestPluralSimpleDropsUnrecognizedTypeWithNoDefault() {
	phones := spec.NewSimpleAttribute("", "phoneNumbers", spec.TypeString, true, "work")
	mapper := NewPluralSimple(phones, []TagBinding{{Tag: "work", LDAPAttr: "telephoneNumber"}}, "", s.defaultTransform())

	resource := scimval.NewResource()
	resource.Set("phoneNumbers", []scimval.PluralValue{
		{Value: scimval.NewSimple("555-1212"), Type: "fax"},
	})

	out := ldapval.NewAttributeSet()
	require.NoError(s.T(), mapper.ToLDAPAttributes(resource, out))
	assert.Equal(s.T(), 0, out.Len())
}

func (s *MappingTestSuite) TestResourceMappingRejectsOverlappingLDAPAttributes() {
	a := spec.NewSimpleAttribute("", "a", spec.TypeString, false)
	b := spec.NewSimpleAttribute("", "b", spec.TypeString, false)
	_, err := NewResourceMapping("User", nil, "uid={a}", []Mapper{
		NewSingularSimple(a, "uid", s.defaultTransform()),
		NewSingularSimple(b, "uid", s.defaultTransform()),
	})
	assert.ErrorIs(s.T(), err, spec.ErrInternal)
}
