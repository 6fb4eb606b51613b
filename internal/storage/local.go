// Package storage keeps uploaded media behind a small Uploader interface.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

var ErrFileNotFound = errors.New("file not found")

// File is the stored object as returned to clients.
type File struct {
	PublicID    string `json:"publicId"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type Uploader interface {
	Upload(ctx context.Context, r io.Reader) (*File, error)
	Remove(ctx context.Context, fileURL string) error
}

// LocalUploader writes files under dir on an afero filesystem and serves them
// from publicURL.
type LocalUploader struct {
	fs        afero.Fs
	dir       string
	publicURL string
}

func NewLocalUploader(fs afero.Fs, dir, publicURL string) (*LocalUploader, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return &LocalUploader{
		fs:        fs,
		dir:       dir,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Fs exposes the underlying filesystem so the HTTP layer can serve it.
func (u *LocalUploader) Fs() afero.Fs {
	return afero.NewBasePathFs(u.fs, u.dir)
}

func (u *LocalUploader) Upload(ctx context.Context, r io.Reader) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	mtype := mimetype.Detect(data)
	publicID := uuid.NewString()
	name := publicID + mtype.Extension()

	if err := afero.WriteFile(u.fs, path.Join(u.dir, name), data, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", name, err)
	}

	return &File{
		PublicID:    publicID,
		URL:         u.publicURL + "/" + name,
		ContentType: mtype.String(),
		Size:        int64(len(data)),
	}, nil
}

// Remove takes the public id from the last URL segment minus its extension
// and deletes the file stored under exactly that id.
func (u *LocalUploader) Remove(ctx context.Context, fileURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	publicID := PublicIDFromURL(fileURL)
	if publicID == "" {
		return ErrFileNotFound
	}

	candidates, err := afero.Glob(u.fs, path.Join(u.dir, publicID+"*"))
	if err != nil {
		return fmt.Errorf("find %s: %w", publicID, err)
	}

	removed := 0
	for _, candidate := range candidates {
		name := path.Base(candidate)
		if name != publicID && !strings.HasPrefix(name, publicID+".") {
			continue
		}
		if err := u.fs.Remove(candidate); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("remove %s: %w", name, err)
		}
		removed++
	}
	if removed == 0 {
		return ErrFileNotFound
	}
	return nil
}

// PublicIDFromURL returns the canonical upload id in fileURL, or "" when the
// last segment is not one.
func PublicIDFromURL(fileURL string) string {
	name := fileURL[strings.LastIndex(fileURL, "/")+1:]
	if dot := strings.IndexByte(name, '.'); dot >= 0 {
		name = name[:dot]
	}

	id, err := uuid.Parse(name)
	if err != nil || id.String() != strings.ToLower(name) {
		return ""
	}
	return id.String()
}
