package mapping

import (
	"testing"

	assert2 "github.com/stretchr/testify/assert"

	"github.com/marlonoliveira182/the-forge-sub002/internal/config"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/field"
)

func newField(baseType string, path ...string) *field.Field {
	return &field.Field{
		Path:        path,
		Category:    field.CategoryProperty,
		Type:        baseType,
		BaseType:    baseType,
		Cardinality: field.Cardinality{Min: 1, Max: 1},
		Required:    true,
	}
}

func TestNameScore(t *testing.T) {
	t.Run("identical", func(t *testing.T) {
		assert := assert2.New(t)
		assert.Equal(1.0, nameScore(newField("string", "a", "id"), newField("string", "b", "id")))
	})

	t.Run("case-and-separator-folding", func(t *testing.T) {
		assert := assert2.New(t)
		// order_id and OrderId tokenize identically
		assert.Equal(1.0, nameScore(newField("string", "order_id"), newField("string", "OrderId")))
	})

	t.Run("partial-token-overlap", func(t *testing.T) {
		assert := assert2.New(t)
		score := nameScore(newField("string", "Name"), newField("string", "FullName"))
		assert.Equal(0.5, score)
	})

	t.Run("unrelated", func(t *testing.T) {
		assert := assert2.New(t)
		assert.Equal(0.0, nameScore(newField("string", "abc"), newField("string", "xyz")))
	})
}

func TestPathScore(t *testing.T) {
	t.Run("identical", func(t *testing.T) {
		assert := assert2.New(t)
		assert.Equal(1.0, pathScore(newField("string", "Order", "Id"), newField("string", "order", "id")))
	})

	t.Run("extra-levels-dilute", func(t *testing.T) {
		assert := assert2.New(t)
		score := pathScore(newField("string", "order", "id"), newField("string", "order", "id", "value"))
		assert.InDelta(2.0/3.0, score, 1e-9)
	})

	t.Run("shared-ancestors-reward", func(t *testing.T) {
		assert := assert2.New(t)
		shared := pathScore(newField("string", "order", "id"), newField("string", "order", "code"))
		unshared := pathScore(newField("string", "invoice", "id"), newField("string", "order", "code"))
		assert.Greater(shared, unshared)
	})
}

func TestTypeScore(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"identical", "string", "string", 1},
		{"numeric-family", "integer", "number", 0.7},
		{"temporal-family", "date", "dateTime", 0.7},
		{"date-vs-string", "date", "string", 0.5},
		{"incompatible", "string", "integer", 0},
		{"object-vs-scalar", "object", "string", 0},
		{"empty-is-neutral", "", "string", 0.5},
		{"unknown-is-neutral", "customKind", "string", 0.5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert2.New(t)
			assert.Equal(tc.expected, typeScore(newField(tc.a, "x"), newField(tc.b, "x")))
		})
	}
}

func TestComposite(t *testing.T) {
	cfg := config.NewMatchConfig()

	t.Run("perfect", func(t *testing.T) {
		assert := assert2.New(t)
		s := newField("string", "order", "id")
		assert.InDelta(1.0, composite(cfg, s, newField("string", "order", "id")), 1e-9)
	})

	t.Run("incompatible-types-cap", func(t *testing.T) {
		assert := assert2.New(t)
		// names and paths agree fully, types cannot
		score := composite(cfg, newField("string", "amount"), newField("boolean", "amount"))
		assert.Equal(cfg.IncompatibleCeiling, score)
	})
}
