package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindWritesFileAndReturnsReference(t *testing.T) {
	b, err := NewBinder(t.TempDir())
	require.NoError(t, err)

	ref, err := b.Bind(NamespaceSubmitted, []byte("jpeg bytes"), "backpack.jpg")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, "/uploads/submitted/"), "got %q", ref)
	assert.True(t, strings.HasSuffix(ref, "-backpack.jpg"), "got %q", ref)

	// The reference maps straight onto a file under the root
	data, err := os.ReadFile(filepath.Join(b.Root(), strings.TrimPrefix(ref, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)
}

func TestBindEmptyPayload(t *testing.T) {
	b, err := NewBinder(t.TempDir())
	require.NoError(t, err)

	ref, err := b.Bind(NamespaceSubmitted, nil, "backpack.jpg")
	require.NoError(t, err)
	assert.Empty(t, ref)
}

func TestBindClaimedNamespaceMarksRole(t *testing.T) {
	b, err := NewBinder(t.TempDir())
	require.NoError(t, err)

	ref, err := b.Bind(NamespaceClaimed, []byte("x"), "evidence.png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, "/uploads/claimed/"), "got %q", ref)
	assert.Contains(t, ref, "-claimer-")
}

func TestBindUniqueNamesForSameOriginal(t *testing.T) {
	b, err := NewBinder(t.TempDir())
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		ref, err := b.Bind(NamespaceSubmitted, []byte("x"), "photo.jpg")
		require.NoError(t, err)
		assert.False(t, seen[ref], "duplicate reference %q", ref)
		seen[ref] = true
	}
}

func TestBindStripsPathFromOriginalName(t *testing.T) {
	b, err := NewBinder(t.TempDir())
	require.NoError(t, err)

	ref, err := b.Bind(NamespaceSubmitted, []byte("x"), "../../etc/passwd")
	require.NoError(t, err)

	// Only the base name survives; the file lands inside the namespace dir
	assert.True(t, strings.HasPrefix(ref, "/uploads/submitted/"), "got %q", ref)
	assert.True(t, strings.HasSuffix(ref, "-passwd"), "got %q", ref)
	assert.NotContains(t, ref[len("/uploads/submitted/"):], "/")
}
