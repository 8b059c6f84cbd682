package bib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYAML(t *testing.T) {
	src := `knuth1984:
  type: book
  title: The TeXbook
  author: Donald E. Knuth
  year: 1984
  publisher: Addison-Wesley
  isbn: 0-201-13448-9
lamport1994:
  title: "LaTeX: A Document Preparation System"
  authors:
    - Leslie Lamport
  year: "1994"
`
	entries, err := ParseYAML([]byte(src))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	knuth := entries["knuth1984"]
	assert.Equal(t, "knuth1984", knuth.Key)
	assert.Equal(t, "book", knuth.Type)
	assert.Equal(t, "The TeXbook", knuth.Title)
	assert.Equal(t, []string{"Donald E. Knuth"}, knuth.Authors)
	// A bare year is a YAML integer; it still lands as a string.
	assert.Equal(t, "1984", knuth.Year)
	assert.Equal(t, "Addison-Wesley", knuth.Publisher)
	assert.Equal(t, map[string]string{"isbn": "0-201-13448-9"}, knuth.Extra)

	lamport := entries["lamport1994"]
	assert.Equal(t, []string{"Leslie Lamport"}, lamport.Authors)
	assert.Equal(t, "1994", lamport.Year)
	assert.Nil(t, lamport.Extra)
}

func TestParseYAMLAuthorSplitting(t *testing.T) {
	src := `pair2001:
  title: Joint Work
  author: Alice Author and Bob Builder
`
	entries, err := ParseYAML([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice Author", "Bob Builder"},
		entries["pair2001"].Authors)
}

func TestParseYAMLEntryNotMapping(t *testing.T) {
	_, err := ParseYAML([]byte("bad: 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a mapping")
}

func TestParseYAMLInvalid(t *testing.T) {
	_, err := ParseYAML([]byte("key: [unclosed\n"))
	require.Error(t, err)
}
