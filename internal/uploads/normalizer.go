package uploads

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/widescope/api/internal/models"
	appErr "github.com/widescope/api/pkg/errors"
)

// Normalize parses the JSON-encoded project form field into a structured
// payload. When a file was received it is renamed to a collision-resistant
// name (millisecond timestamp prefix plus the client name) which becomes
// the payload's logo; otherwise the logo is the sentinel value meaning
// "keep existing / no logo".
func Normalize(dir, projectField string, file *StoredFile) (*models.Project, error) {
	var p models.Project
	if err := json.Unmarshal([]byte(projectField), &p); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInvalid, "invalid data")
	}

	if file == nil {
		p.Logo = models.DefaultLogo
		return &p, nil
	}

	name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), filepath.Base(file.ClientName))
	if err := os.Rename(filepath.Join(dir, file.TempName), filepath.Join(dir, name)); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInvalid, "invalid data")
	}

	p.Logo = name
	return &p, nil
}
