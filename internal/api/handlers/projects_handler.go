package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/widescope/api/internal/api/middleware"
	"github.com/widescope/api/internal/api/types"
	"github.com/widescope/api/internal/api/validators"
	"github.com/widescope/api/internal/models"
	"github.com/widescope/api/internal/services"
	"github.com/widescope/api/internal/uploads"
	appErr "github.com/widescope/api/pkg/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ProjectsHandler struct {
	projects   services.ProjectService
	users      services.UserService
	receiver   *uploads.Receiver
	compressor *uploads.Compressor
	uploader   *uploads.RemoteUploader
	uploadDir  string
}

func NewProjectsHandler(
	projects services.ProjectService,
	users services.UserService,
	receiver *uploads.Receiver,
	compressor *uploads.Compressor,
	uploader *uploads.RemoteUploader,
	uploadDir string,
) *ProjectsHandler {
	return &ProjectsHandler{
		projects:   projects,
		users:      users,
		receiver:   receiver,
		compressor: compressor,
		uploader:   uploader,
		uploadDir:  uploadDir,
	}
}

func (h *ProjectsHandler) All(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}
	size, _ := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 64)
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	projects, total, err := h.projects.List(r.Context(), size, (page-1)*size)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    map[string]any{"projects": projects},
		Meta: &types.Meta{
			RequestID: middleware.GetRequestID(r.Context()),
			Page:      int(page),
			PageSize:  int(size),
			Total:     total,
		},
	})
}

func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectId"))
	if err != nil {
		writeError(w, r, appErr.Wrap(err, appErr.CodeNotFound, "no projects found"))
		return
	}

	project, err := h.projects.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: map[string]any{"project": project}})
}

func (h *ProjectsHandler) ByAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, r, appErr.Wrap(err, appErr.CodeNotFound, "unable to get the requested projects"))
		return
	}

	author, err := h.users.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	projects, err := h.projects.ListByAuthor(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(projects) == 0 {
		writeError(w, r, appErr.New(appErr.CodeNotFound, author.Name+" has 0 projects"))
		return
	}

	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data: map[string]any{"projectsByAuthor": map[string]any{
			"author":   author.Name,
			"total":    len(projects),
			"projects": projects,
		}},
	})
}

// Create runs the image pipeline before persisting: the multipart request
// is received, the JSON payload normalized, the logo compressed and both
// artifacts pushed to the object store, and the resulting payload validated
// against the project schema.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	file, err := h.receiver.Receive(w, r, uploads.FieldLogo)
	if err != nil {
		writeError(w, r, err)
		return
	}

	project, err := uploads.Normalize(h.uploadDir, r.FormValue(uploads.FieldProject), file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.runImagePipeline(r, project); err != nil {
		writeError(w, r, err)
		return
	}

	if err := validators.New().Struct(project); err != nil {
		writeError(w, r, appErr.Wrap(err, appErr.CodeInvalid, "invalid data"))
		return
	}

	created, err := h.projects.Create(r.Context(), project)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: map[string]any{"project": created}})
}

// Update accepts the logo under a separate field so a client can submit the
// form without touching the stored image: an empty client filename skips
// the pipeline and the sentinel logo keeps the existing one.
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	requesterID, err := primitive.ObjectIDFromHex(middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, appErr.Wrap(err, appErr.CodeUnauthorized, "authentication error"))
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectId"))
	if err != nil {
		writeError(w, r, appErr.Wrap(err, appErr.CodeNotFound, "no projects found"))
		return
	}

	file, err := h.receiver.Receive(w, r, uploads.FieldLogoUpdate)
	if err != nil {
		writeError(w, r, err)
		return
	}

	project, err := uploads.Normalize(h.uploadDir, r.FormValue(uploads.FieldProject), file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Ownership is checked before the image pipeline so a non-owner's
	// request never touches the object store.
	if project.AuthorID != requesterID {
		writeError(w, r, appErr.New(appErr.CodeForbidden, "couldn't update the project"))
		return
	}

	if err := h.runImagePipeline(r, project); err != nil {
		writeError(w, r, err)
		return
	}

	if err := validators.New().Struct(project); err != nil {
		writeError(w, r, appErr.Wrap(err, appErr.CodeInvalid, "invalid data"))
		return
	}

	updated, err := h.projects.Update(r.Context(), id, requesterID, project)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: map[string]any{"projectUpdated": updated}})
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requesterID, err := primitive.ObjectIDFromHex(middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, appErr.Wrap(err, appErr.CodeUnauthorized, "authentication error"))
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectId"))
	if err != nil {
		writeError(w, r, appErr.Wrap(err, appErr.CodeNotFound, "couldn't delete any project"))
		return
	}

	if err := h.projects.Delete(r.Context(), id, requesterID); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data: map[string]any{"projectDeleted": map[string]string{
			"id":     id.Hex(),
			"status": "Deleted",
		}},
	})
}

// runImagePipeline compresses the normalized logo and uploads both
// artifacts. A sentinel logo passes straight through.
func (h *ProjectsHandler) runImagePipeline(r *http.Request, p *models.Project) error {
	if err := h.compressor.Compress(p.Logo); err != nil {
		return err
	}
	url, err := h.uploader.Upload(r.Context(), p.Logo)
	if err != nil {
		return err
	}
	if url != "" {
		p.LogoBackup = url
	}
	return nil
}
