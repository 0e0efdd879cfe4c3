package ldapval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttributeSet(t *testing.T) {
	set := NewAttributeSet()
	set.Add("sn", "Jensen")
	set.Add("mail", "a@x")
	set.Add("mail", "b@y")
	set.Add("SN", "Jensen2")

	assert.Equal(t, 2, set.Len())

	sn := set.Get("Sn")
	assert.NotNil(t, sn)
	assert.Equal(t, []string{"Jensen", "Jensen2"}, sn.Values)

	var order []string
	set.ForEach(func(attr *Attribute) { order = append(order, attr.Type) })
	assert.Equal(t, []string{"sn", "mail"}, order)
}

func TestEntryLookup(t *testing.T) {
	e := &Entry{
		DN: "uid=bjensen,ou=people,dc=example,dc=com",
		Attributes: []*Attribute{
			{Type: "uid", Values: []string{"bjensen"}},
			{Type: "mail", Values: []string{"a@x", "b@y"}},
		},
	}

	assert.True(t, e.HasAttribute("UID"))
	v, ok := e.FirstValue("mail")
	assert.True(t, ok)
	assert.Equal(t, "a@x", v)

	_, ok = e.FirstValue("homeEmail")
	assert.False(t, ok)
}
