package field

import (
	"testing"

	assert2 "github.com/stretchr/testify/assert"
)

func TestCardinality(t *testing.T) {
	t.Run("required", func(t *testing.T) {
		assert := assert2.New(t)
		assert.True(Cardinality{Min: 1, Max: 1}.Required())
		assert.False(Cardinality{Min: 0, Max: 1}.Required())
	})

	t.Run("string", func(t *testing.T) {
		assert := assert2.New(t)
		assert.Equal("1", Cardinality{Min: 1, Max: 1}.String())
		assert.Equal("0..1", Cardinality{Min: 0, Max: 1}.String())
		assert.Equal("0..n", Cardinality{Min: 0, Max: Unbounded}.String())
		assert.Equal("1..n", Cardinality{Min: 1, Max: Unbounded}.String())
		assert.Equal("2..5", Cardinality{Min: 2, Max: 5}.String())
	})
}

func TestField(t *testing.T) {
	assert := assert2.New(t)

	f := &Field{
		Path: []string{"Order", "Customer", "Name"},
		Constraints: map[ConstraintKind]string{
			ConstraintMaxLength: "50",
			ConstraintPattern:   "[A-Z].*",
		},
	}

	assert.Equal("Name", f.Name())
	assert.Equal("Order.Customer.Name", f.JoinedPath())
	assert.Equal(3, f.Depth())
	assert.Equal("pattern=[A-Z].*; maxLength=50", f.ConstraintString())

	empty := &Field{}
	assert.Equal("", empty.Name())
	assert.Equal("", empty.ConstraintString())
}

func TestListValidate(t *testing.T) {
	t.Run("unique", func(t *testing.T) {
		assert := assert2.New(t)
		l := List{
			{Path: []string{"a"}},
			{Path: []string{"a", "b"}},
		}
		assert.NoError(l.Validate())
	})

	t.Run("duplicate", func(t *testing.T) {
		assert := assert2.New(t)
		l := List{
			{Path: []string{"a", "b"}},
			{Path: []string{"a", "b"}},
		}
		err := l.Validate()
		assert.Error(err)

		dup, ok := err.(*DuplicatePathError)
		assert.True(ok)
		assert.Equal("a.b", dup.Path)
	})
}

func TestListAppendCandidate(t *testing.T) {
	t.Run("same-group-merges", func(t *testing.T) {
		assert := assert2.New(t)
		var l List
		l.AppendCandidate(&Field{Path: []string{"a"}, Group: "g1", Type: "string", BaseType: "string"})
		l.AppendCandidate(&Field{Path: []string{"a"}, Group: "g1", Description: "from the other branch"})

		assert.Len(l, 1)
		assert.Equal("string", l[0].Type)
		assert.Equal("from the other branch", l[0].Description)
	})

	t.Run("enrich-fills-type", func(t *testing.T) {
		assert := assert2.New(t)
		var l List
		l.AppendCandidate(&Field{Path: []string{"a"}, Group: "g1"})
		l.AppendCandidate(&Field{Path: []string{"a"}, Group: "g1", Type: "Code", BaseType: "string"})

		assert.Len(l, 1)
		assert.Equal("Code", l[0].Type)
		assert.Equal("string", l[0].BaseType)
	})

	t.Run("no-group-appends", func(t *testing.T) {
		assert := assert2.New(t)
		var l List
		l.AppendCandidate(&Field{Path: []string{"a"}})
		l.AppendCandidate(&Field{Path: []string{"a"}})

		assert.Len(l, 2)
		assert.Error(l.Validate())
	})
}

func TestListFind(t *testing.T) {
	assert := assert2.New(t)

	l := List{
		{Path: []string{"a"}},
		{Path: []string{"a", "b"}},
	}
	assert.Equal(l[1], l.Find("a.b"))
	assert.Nil(l.Find("missing"))
	assert.Equal([]string{"a", "a.b"}, l.Paths())
}
