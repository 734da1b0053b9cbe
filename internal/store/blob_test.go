package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anbuchelva/cams/internal/domain"
)

func TestBlobSaveAndOpen(t *testing.T) {
	blobs, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)

	name, err := blobs.Save("agreementDocument", "contract.pdf", strings.NewReader("%PDF-1.4 data"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "agreementDocument-"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))

	f, err := blobs.Open(name)
	require.NoError(t, err)
	defer f.Close()

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 data", string(data))
}

func TestBlobOpenMissing(t *testing.T) {
	blobs, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)

	_, err = blobs.Open("agreementDocument-123.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBlobOpenRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	blobs, err := NewBlobStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	// A file outside the uploads dir must stay unreachable.
	outside := filepath.Join(dir, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o600))

	for _, name := range []string{"", "../secret.txt", "/etc/passwd", ".hidden"} {
		_, err := blobs.Open(name)
		assert.ErrorIs(t, err, domain.ErrNotFound, "name %q", name)
	}
}

func TestBlobRemove(t *testing.T) {
	blobs, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)

	name, err := blobs.Save("billSettlementProof", "bill.pdf", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, blobs.Remove(name))
	_, err = blobs.Open(name)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Removing a missing blob is not an error.
	require.NoError(t, blobs.Remove(name))
}
