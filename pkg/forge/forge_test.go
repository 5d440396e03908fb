package forge

import (
	"path/filepath"
	"testing"

	assert2 "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlonoliveira182/the-forge-sub002/pkg/extractor"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/mapping"
)

func TestExtractFileDispatch(t *testing.T) {
	testCases := []struct {
		name   string
		file   string
		format extractor.Format
		paths  []string
	}{
		{
			name:   "xsd",
			file:   "customer.xsd",
			format: extractor.FormatXSD,
			paths:  []string{"customer", "customer.id", "customer.fullName", "customer.age"},
		},
		{
			name:   "json schema",
			file:   "customer.schema.json",
			format: extractor.FormatJSONSchema,
			paths:  []string{"customer", "customer.id", "customer.fullName", "customer.age"},
		},
		{
			name:   "openapi",
			file:   "petstore.yml",
			format: extractor.FormatOpenAPI,
			paths:  []string{"Pet", "Pet.name", "Pet.tag"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert2.New(t)

			fields, format, err := ExtractFile(filepath.Join("testdata", tc.file), nil)
			require.NoError(t, err)
			assert.Equal(tc.format, format)
			assert.Equal(tc.paths, fields.Paths())
		})
	}
}

func TestExtractUnknownFormat(t *testing.T) {
	assert := assert2.New(t)

	_, format, err := Extract("notes.txt", []byte("just some text"), nil)
	assert.Equal(extractor.FormatUnknown, format)

	var unknown *UnknownFormatError
	assert.ErrorAs(err, &unknown)
	assert.Equal("notes.txt", unknown.Path)
}

func TestExtractFileMissing(t *testing.T) {
	assert := assert2.New(t)

	_, _, err := ExtractFile(filepath.Join("testdata", "absent.xsd"), nil)
	assert.Error(err)
}

func TestMapFiles(t *testing.T) {
	assert := assert2.New(t)

	res, err := MapFiles(
		filepath.Join("testdata", "customer.xsd"),
		filepath.Join("testdata", "customer.schema.json"),
		nil,
	)
	require.NoError(t, err)

	stats := res.Stats()
	assert.Equal(4, stats.Total)
	assert.Equal(4, stats.Exact)
	assert.Equal(0, stats.Unmatched)

	for _, e := range res.Entries {
		assert.Equal(mapping.MatchExact, e.MatchType)
		assert.Equal(e.Source.Path, e.Target.Path)
	}
}

func TestMapFilesExtractFailure(t *testing.T) {
	assert := assert2.New(t)

	_, err := MapFiles(
		filepath.Join("testdata", "absent.xsd"),
		filepath.Join("testdata", "customer.schema.json"),
		nil,
	)
	assert.Error(err)
	assert.Contains(err.Error(), "absent.xsd")
}
