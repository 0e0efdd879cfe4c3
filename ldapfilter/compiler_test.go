package ldapfilter

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/UnboundID/scim/filterql"
	"github.com/UnboundID/scim/mapping"
	"github.com/UnboundID/scim/spec"
	"github.com/UnboundID/scim/transform"
)

func TestCompiler(t *testing.T) {
	suite.Run(t, new(CompilerTestSuite))
}

type CompilerTestSuite struct {
	suite.Suite
	rm *mapping.ResourceMapping
}

func (s *CompilerTestSuite) SetupTest() {
	tr := transform.NewRegistry()
	def, err := tr.Lookup("default")
	require.NoError(s.T(), err)

	userName := spec.NewSimpleAttribute("", "userName", spec.TypeString, false)
	name := spec.NewComplexAttribute("", "name", false, []*spec.Attribute{
		spec.NewSimpleAttribute("", "familyName", spec.TypeString, false),
	})
	emails := spec.NewSimpleAttribute("", "emails", spec.TypeString, true, "work", "home")

	uidMapper := mapping.NewSingularSimple(userName, "uid", def)
	nameMapper := mapping.NewSingularComplex(name, []mapping.SubMapping{
		mapping.NewSubMapping(name.SubAttributeForName("familyName"), "sn", def),
	})
	emailsMapper := mapping.NewPluralSimple(emails, []mapping.TagBinding{
		{Tag: "work", LDAPAttr: "mail"},
		{Tag: "home", LDAPAttr: "homeEmail"},
	}, "", def)

	rm, err := mapping.NewResourceMapping("User", []string{"inetOrgPerson"}, "uid={userName}",
		[]mapping.Mapper{uidMapper, nameMapper, emailsMapper})
	require.NoError(s.T(), err)
	s.rm = rm
}

func (s *CompilerTestSuite) compile(filter string) string {
	node, err := filterql.Parse(filter)
	require.NoError(s.T(), err, filter)
	return Compile(s.rm, node)
}

// F1: userName eq "bjensen" compiles to (uid=bjensen) (§8 F1).
func (s *CompilerTestSuite) TestF1FilterSimple() {
	s.Require().Equal("(uid=bjensen)", s.compile(`userName eq "bjensen"`))
}

// F2: (name.familyName sw "Jen" and emails.value co "@x") compiles to
// (&(sn=Jen*)(|(mail=*@x*)(homeEmail=*@x*))) (§8 F2).
func (s *CompilerTestSuite) TestF2FilterCompound() {
	s.Require().Equal("(&(sn=Jen*)(|(mail=*@x*)(homeEmail=*@x*)))",
		s.compile(`(name.familyName sw "Jen" and emails.value co "@x")`))
}

// F3: emails pr compiles to (|(mail=*)(homeEmail=*)) (§8 F3).
func (s *CompilerTestSuite) TestF3FilterPresenceOnPlural() {
	s.Require().Equal("(|(mail=*)(homeEmail=*))", s.compile(`emails pr`))
}

// F4: nonexistent eq "foo" compiles to the always-false filter (|) (§8 F4).
func (s *CompilerTestSuite) TestF4FilterUnsupported() {
	s.Require().Equal("(|)", s.compile(`nonexistent eq "foo"`))
}

func (s *CompilerTestSuite) TestSortKey() {
	ldapAttr, err := CompileSortKey(s.rm, "userName")
	require.NoError(s.T(), err)
	s.Require().Equal("uid", ldapAttr)

	_, err = CompileSortKey(s.rm, "name")
	s.Require().ErrorIs(err, spec.ErrUnsupportedConversion)

	_, err = CompileSortKey(s.rm, "nonexistent")
	s.Require().ErrorIs(err, spec.ErrUnknownAttribute)
}
