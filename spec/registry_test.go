package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestRegistry(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

type RegistryTestSuite struct {
	suite.Suite
	registry *Registry
}

func (s *RegistryTestSuite) SetupTest() {
	name := NewComplexAttribute("", "name", false, []*Attribute{
		NewSimpleAttribute("", "familyName", TypeString, false),
		NewSimpleAttribute("", "givenName", TypeString, false),
	})
	userName := NewSimpleAttribute("", "userName", TypeString, false)
	emails := NewComplexAttribute("", "emails", true, []*Attribute{
		NewSimpleAttribute("", "value", TypeString, false),
		NewSimpleAttribute("", "type", TypeString, false),
	}, "work", "home")

	s.registry = NewRegistry()
	s.registry.RegisterResource(NewResourceDescriptor("User", userName, name, emails))
}

func (s *RegistryTestSuite) TestLookupResource() {
	rd, err := s.registry.LookupResource("user")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "User", rd.Name())

	_, err = s.registry.LookupResource("Group")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *RegistryTestSuite) TestLookupAttribute() {
	attr, err := s.registry.LookupAttribute("User", "", "USERNAME")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "userName", attr.Name())
	assert.Equal(s.T(), TypeString, attr.Type())

	_, err = s.registry.LookupAttribute("User", "", "nonexistent")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *RegistryTestSuite) TestLookupSubAttribute() {
	name, err := s.registry.LookupAttribute("User", "", "name")
	require.NoError(s.T(), err)

	sub, err := s.registry.LookupSubAttribute(name, "FamilyName")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "familyName", sub.Name())

	_, err = s.registry.LookupSubAttribute(name, "nonexistent")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *RegistryTestSuite) TestMultiValuedTypeTags() {
	emails, err := s.registry.LookupAttribute("User", "", "emails")
	require.NoError(s.T(), err)
	assert.True(s.T(), emails.MultiValued())
	assert.True(s.T(), emails.HasTypeTag("Work"))
	assert.False(s.T(), emails.HasTypeTag("mobile"))
	assert.Equal(s.T(), []string{"work", "home"}, emails.TypeTags())
}
