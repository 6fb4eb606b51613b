package storage

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func newTestUploader(t *testing.T) (*LocalUploader, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	u, err := NewLocalUploader(fs, "uploads", "http://localhost:8080/uploads/")
	require.NoError(t, err)
	return u, fs
}

func TestUpload_DetectsTypeAndStoresFile(t *testing.T) {
	u, fs := newTestUploader(t)

	file, err := u.Upload(context.Background(), bytes.NewReader(pngHeader))
	require.NoError(t, err)

	assert.Equal(t, "image/png", file.ContentType)
	assert.Equal(t, int64(len(pngHeader)), file.Size)
	assert.True(t, strings.HasPrefix(file.URL, "http://localhost:8080/uploads/"+file.PublicID))
	assert.True(t, strings.HasSuffix(file.URL, ".png"))

	exists, err := afero.Exists(fs, "uploads/"+file.PublicID+".png")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRemove_ByURL(t *testing.T) {
	u, fs := newTestUploader(t)

	file, err := u.Upload(context.Background(), strings.NewReader("plain text body"))
	require.NoError(t, err)

	require.NoError(t, u.Remove(context.Background(), file.URL))

	exists, err := afero.Exists(fs, "uploads/"+file.PublicID+".txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRemove_Unknown(t *testing.T) {
	u, _ := newTestUploader(t)

	err := u.Remove(context.Background(), "http://localhost:8080/uploads/does-not-exist.png")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestRemove_PartialIDLeavesOtherFiles(t *testing.T) {
	u, fs := newTestUploader(t)
	ctx := context.Background()

	stored := make([]*File, 0, 40)
	for i := 0; i < 40; i++ {
		file, err := u.Upload(ctx, strings.NewReader("body "+strconv.Itoa(i)))
		require.NoError(t, err)
		stored = append(stored, file)
	}

	attempts := []string{"http://localhost:8080/uploads/"}
	for _, c := range "0123456789abcdef" {
		attempts = append(attempts, "http://localhost:8080/uploads/"+string(c))
		attempts = append(attempts, "http://localhost:8080/uploads/"+string(c)+".txt")
	}
	attempts = append(attempts, "http://localhost:8080/uploads/"+stored[0].PublicID[:8]+".txt")

	for _, url := range attempts {
		assert.ErrorIs(t, u.Remove(ctx, url), ErrFileNotFound, url)
	}

	for _, file := range stored {
		exists, err := afero.Exists(fs, "uploads/"+file.PublicID+".txt")
		require.NoError(t, err)
		assert.True(t, exists, file.PublicID)
	}
}

func TestPublicIDFromURL(t *testing.T) {
	id := "3f2b8c1e-9a4d-4e6f-8b2a-1c5d7e9f0a3b"

	tests := []struct {
		url  string
		want string
	}{
		{"https://cdn.example/a/b/" + id + ".jpg", id},
		{"https://cdn.example/" + id, id},
		{"https://cdn.example/" + strings.ToUpper(id) + ".png", ""},
		{"https://cdn.example/" + strings.ReplaceAll(id, "-", "") + ".png", ""},
		{"https://cdn.example/abc123.jpg", ""},
		{"https://cdn.example/0", ""},
		{"https://cdn.example/*.png", ""},
		{"https://cdn.example/", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PublicIDFromURL(tt.url), tt.url)
	}
}
