package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "students.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeRoster(t, "Number,Surname,Name\nS12345,Doe,Alex\nS67890,Park,Kim\n")

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())

	name, ok := r.Lookup("S12345")
	require.True(t, ok)
	assert.Equal(t, "Alex Doe", name)

	name, ok = r.Lookup("S67890")
	require.True(t, ok)
	assert.Equal(t, "Kim Park", name)

	_, ok = r.Lookup("S00000")
	assert.False(t, ok)
}

func TestLoadSkipsHeaderAndShortRows(t *testing.T) {
	path := writeRoster(t, "Number,Surname,Name\nS12345,Doe,Alex\nS99999\n,Nameless,Row\n")

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	// The header row never becomes an entry
	_, ok := r.Lookup("Number")
	assert.False(t, ok)
}

func TestLoadTrimsWhitespace(t *testing.T) {
	path := writeRoster(t, "Number,Surname,Name\n S12345 , Doe , Alex \n")

	r, err := Load(path)
	require.NoError(t, err)

	name, ok := r.Lookup("S12345")
	require.True(t, ok)
	assert.Equal(t, "Alex Doe", name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestEmpty(t *testing.T) {
	r := Empty()
	assert.Zero(t, r.Len())
	_, ok := r.Lookup("S12345")
	assert.False(t, ok)
}
