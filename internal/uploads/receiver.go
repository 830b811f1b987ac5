package uploads

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	appErr "github.com/widescope/api/pkg/errors"
)

// Multipart field names used by the project endpoints.
const (
	FieldProject    = "project"
	FieldLogo       = "logo"
	FieldLogoUpdate = "logo_update"
)

// StoredFile describes an accepted upload persisted under a temporary
// server-generated name.
type StoredFile struct {
	TempName   string
	ClientName string
}

// Receiver accepts a single multipart file and writes it to Dir under a
// generated name.
type Receiver struct {
	Dir      string
	MaxBytes int64
}

func NewReceiver(dir string, maxBytes int64) *Receiver {
	return &Receiver{Dir: dir, MaxBytes: maxBytes}
}

// Receive pulls the file under field out of the request. A missing file, or
// a FieldLogoUpdate file whose client-supplied name is empty, returns
// (nil, nil) so the caller skips image replacement. The body is capped
// while reading; an oversized upload is rejected without being spooled to
// disk first.
func (rc *Receiver) Receive(w http.ResponseWriter, r *http.Request, field string) (*StoredFile, error) {
	// Slack on top of MaxBytes covers the non-file form fields and the
	// multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, rc.MaxBytes+64<<10)
	if err := r.ParseMultipartForm(rc.MaxBytes); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInvalid, "invalid data")
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, appErr.Wrap(err, appErr.CodeInvalid, "invalid data")
	}
	defer file.Close()

	if field == FieldLogoUpdate && header.Filename == "" {
		return nil, nil
	}
	if header.Size > rc.MaxBytes {
		return nil, appErr.New(appErr.CodeInvalid, "file too large")
	}

	if err := os.MkdirAll(rc.Dir, 0o755); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "invalid data")
	}

	tempName := uuid.NewString() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(rc.Dir, tempName))
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "invalid data")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "invalid data")
	}

	return &StoredFile{TempName: tempName, ClientName: header.Filename}, nil
}
