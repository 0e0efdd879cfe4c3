package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/UnboundID/scim/spec"
)

func TestTransforms(t *testing.T) {
	suite.Run(t, new(TransformTestSuite))
}

type TransformTestSuite struct {
	suite.Suite
	registry *Registry
}

func (s *TransformTestSuite) SetupTest() {
	s.registry = NewRegistry()
}

func (s *TransformTestSuite) TestLookup() {
	d, err := s.registry.Lookup("default")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "default", d.Name())

	_, err = s.registry.Lookup("nonexistent")
	assert.ErrorIs(s.T(), err, spec.ErrInternal)
}

func (s *TransformTestSuite) TestDefaultUnsupported() {
	attr := spec.NewSimpleAttribute("", "x", spec.TypeDateTime, false)
	_, err := Default{}.ToLDAPValue(attr, "anything")
	assert.ErrorIs(s.T(), err, spec.ErrUnsupportedConversion)
}

func (s *TransformTestSuite) TestGeneralizedTimeRoundTrip() {
	attr := spec.NewSimpleAttribute("", "meta.created", spec.TypeDateTime, false)
	gt := GeneralizedTime{}

	ldapVal, err := gt.ToLDAPValue(attr, "2020-05-17T08:30:00.123Z")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "20200517083000.123Z", ldapVal)

	scimVal, err := gt.ToSCIMValue(attr, ldapVal)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "2020-05-17T08:30:00.123Z", scimVal)
}

func (s *TransformTestSuite) TestGeneralizedTimePreservesInstantAcrossOffset() {
	attr := spec.NewSimpleAttribute("", "meta.created", spec.TypeDateTime, false)
	gt := GeneralizedTime{}

	ldapVal, err := gt.ToLDAPValue(attr, "2020-05-17T10:30:00.000+02:00")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "20200517083000.000Z", ldapVal)
}

func (s *TransformTestSuite) TestPostalAddressEscaping() {
	attr := spec.NewSimpleAttribute("", "addresses.formatted", spec.TypeString, false)
	pa := PostalAddress{}

	scim := "100 Main St\nCity, ST 00000"
	ldapVal, err := pa.ToLDAPValue(attr, scim)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "100 Main St$City, ST 00000", ldapVal)

	back, err := pa.ToSCIMValue(attr, ldapVal)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), scim, back)
}

func (s *TransformTestSuite) TestPostalAddressEscapesDollarAndBackslash() {
	attr := spec.NewSimpleAttribute("", "addresses.formatted", spec.TypeString, false)
	pa := PostalAddress{}

	scim := `Cost: $5 \ more`
	ldapVal, err := pa.ToLDAPValue(attr, scim)
	require.NoError(s.T(), err)
	assert.Contains(s.T(), ldapVal, `\24`)
	assert.Contains(s.T(), ldapVal, `\5C`)

	back, err := pa.ToSCIMValue(attr, ldapVal)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), scim, back)
}

func (s *TransformTestSuite) TestPostalAddressUnknownEscapePassesThrough() {
	attr := spec.NewSimpleAttribute("", "addresses.formatted", spec.TypeString, false)
	pa := PostalAddress{}

	back, err := pa.ToSCIMValue(attr, `a\ffb`)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), `a\ffb`, back)
}

func (s *TransformTestSuite) TestTelephoneNumberFilterValueStripsSpacesAndDashes() {
	tn := TelephoneNumber{}
	assert.Equal(s.T(), "5551234567", tn.ToLDAPFilterValue("555-123 4567"))
}

func (s *TransformTestSuite) TestCaseExactMatchIdentity() {
	attr := spec.NewSimpleAttribute("", "manager", spec.TypeString, false)
	ce := CaseExactMatch{}
	v, err := ce.ToLDAPValue(attr, "uid=boss,ou=people,dc=example,dc=com")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "uid=boss,ou=people,dc=example,dc=com", v)
}
