package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/storage"
	"event-ticketing/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memUploader stores uploads by URL and fails the failOn-th upload (1-based).
type memUploader struct {
	mu      sync.Mutex
	files   map[string]struct{}
	uploads int
	failOn  int
	removed []string
}

func newMemUploader(failOn int) *memUploader {
	return &memUploader{files: map[string]struct{}{}, failOn: failOn}
}

func (u *memUploader) Upload(_ context.Context, r io.Reader) (*storage.File, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.uploads++
	if u.uploads == u.failOn {
		return nil, errors.New("disk full")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	id := fmt.Sprintf("file-%d", u.uploads)
	url := "http://localhost:8080/uploads/" + id + ".txt"
	u.files[url] = struct{}{}
	return &storage.File{PublicID: id, URL: url, ContentType: "text/plain", Size: int64(len(data))}, nil
}

func (u *memUploader) Remove(_ context.Context, fileURL string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.files[fileURL]; !ok {
		return storage.ErrFileNotFound
	}
	delete(u.files, fileURL)
	u.removed = append(u.removed, fileURL)
	return nil
}

func readers(bodies ...string) []io.Reader {
	out := make([]io.Reader, len(bodies))
	for i, b := range bodies {
		out[i] = strings.NewReader(b)
	}
	return out
}

func TestMediaService_UploadMultiple(t *testing.T) {
	uploader := newMemUploader(0)
	svc := NewMediaService(uploader, zap.NewNop())

	files, err := svc.UploadMultiple(context.Background(), readers("a", "bb", "ccc"))
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, int64(3), files[2].Size)
	assert.Len(t, uploader.files, 3)
	assert.Empty(t, uploader.removed)
}

func TestMediaService_UploadMultiple_DiscardsStoredFilesOnFailure(t *testing.T) {
	uploader := newMemUploader(3)
	svc := NewMediaService(uploader, zap.NewNop())

	files, err := svc.UploadMultiple(context.Background(), readers("a", "b", "c", "d"))
	require.Error(t, err)
	assert.Nil(t, files)

	assert.Empty(t, uploader.files)
	assert.ElementsMatch(t, []string{
		"http://localhost:8080/uploads/file-1.txt",
		"http://localhost:8080/uploads/file-2.txt",
	}, uploader.removed)
	// nothing after the failing file is attempted
	assert.Equal(t, 3, uploader.uploads)
}

func TestMediaService_UploadMultiple_Empty(t *testing.T) {
	svc := NewMediaService(newMemUploader(0), zap.NewNop())

	_, err := svc.UploadMultiple(context.Background(), nil)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "files")
}

func TestMediaService_Remove(t *testing.T) {
	uploader := newMemUploader(0)
	svc := NewMediaService(uploader, zap.NewNop())

	file, err := svc.UploadSingle(context.Background(), strings.NewReader("body"))
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), &request.RemoveMediaRequest{FileURL: file.URL}))
	assert.Empty(t, uploader.files)

	err = svc.Remove(context.Background(), &request.RemoveMediaRequest{FileURL: file.URL})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	err = svc.Remove(context.Background(), &request.RemoveMediaRequest{})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}
