package uploads

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/widescope/api/internal/models"
	"github.com/widescope/api/internal/storage/objectstore"
	appErr "github.com/widescope/api/pkg/errors"
)

// RemoteUploader pushes the original and compressed files to the object
// store and returns the public URL used as the logo backup reference.
type RemoteUploader struct {
	Dir   string
	Store objectstore.ObjectStore
}

func NewRemoteUploader(dir string, store objectstore.ObjectStore) *RemoteUploader {
	return &RemoteUploader{Dir: dir, Store: store}
}

// Upload reads both local artifacts and pushes them under their respective
// names. Both uploads must succeed; a partial failure is surfaced without
// local cleanup. A sentinel name is a no-op returning an empty URL.
func (u *RemoteUploader) Upload(ctx context.Context, name string) (string, error) {
	if name == "" || name == models.DefaultLogo {
		return "", nil
	}

	original, err := os.ReadFile(filepath.Join(u.Dir, name))
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "couldn't upload or read the image")
	}
	compressed, err := os.ReadFile(filepath.Join(u.Dir, CompressedPrefix+name))
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "couldn't upload or read the image")
	}

	if err := u.Store.Put(ctx, name, bytes.NewReader(original), "image/jpeg"); err != nil {
		return "", err
	}
	if err := u.Store.Put(ctx, CompressedPrefix+name, bytes.NewReader(compressed), "image/jpeg"); err != nil {
		return "", err
	}

	return u.Store.PublicURL(name), nil
}
