package services

import (
	"context"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/widescope/api/internal/cache"
	"github.com/widescope/api/internal/models"
	"github.com/widescope/api/internal/repository"
	appErr "github.com/widescope/api/pkg/errors"
	"github.com/widescope/api/pkg/logger"
)

const listCacheKey = "projects:all"

type ProjectService interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	List(ctx context.Context, limit, offset int64) ([]models.Project, int64, error)
	ListByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Project, error)
	Create(ctx context.Context, p *models.Project) (*models.Project, error)
	Update(ctx context.Context, id, requesterID primitive.ObjectID, p *models.Project) (*models.Project, error)
	Delete(ctx context.Context, id, requesterID primitive.ObjectID) error
}

type projectService struct {
	projects repository.ProjectRepository
	users    repository.UserRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewProjectService(projects repository.ProjectRepository, users repository.UserRepository, c cache.Cache) ProjectService {
	return &projectService{projects: projects, users: users, cache: c, cacheTTL: 30 * time.Second}
}

func (s *projectService) Get(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	if err := s.projects.GetByID(ctx, id, &p); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeNotFound, "no projects found")
	}
	return &p, nil
}

func (s *projectService) List(ctx context.Context, limit, offset int64) ([]models.Project, int64, error) {
	if offset == 0 && s.cache != nil {
		if b, ok := s.cache.Get(ctx, listCacheKey); ok {
			var cached struct {
				Projects []models.Project `json:"projects"`
				Total    int64            `json:"total"`
			}
			if err := json.Unmarshal(b, &cached); err == nil && int64(len(cached.Projects)) >= limit {
				return cached.Projects[:limit], cached.Total, nil
			}
		}
	}

	projects, err := s.projects.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if len(projects) == 0 {
		return nil, 0, appErr.New(appErr.CodeNotFound, "no projects found")
	}
	total, err := s.projects.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	if offset == 0 && s.cache != nil {
		b, err := json.Marshal(struct {
			Projects []models.Project `json:"projects"`
			Total    int64            `json:"total"`
		}{projects, total})
		if err == nil {
			s.cache.Set(ctx, listCacheKey, b, s.cacheTTL)
		}
	}

	return projects, total, nil
}

func (s *projectService) ListByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Project, error) {
	var author models.User
	if err := s.users.GetByID(ctx, authorID, &author); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeNotFound, "unable to get the requested projects")
	}

	projects, err := s.projects.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeNotFound, "unable to get the requested projects")
	}
	return projects, nil
}

// Create persists the project, then records it in the author's project
// list. The two steps are a best-effort saga, not a transaction: when the
// author cannot be found or updated, the just-created project is deleted
// and the error surfaced. A crash between the two steps can leave an
// orphaned project behind.
func (s *projectService) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	p.ID = primitive.NilObjectID
	p.CreationDate = time.Now().UTC()

	id, err := s.projects.Create(ctx, p)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInvalid, "unable to create the project")
	}
	p.ID = id

	var author models.User
	if err := s.users.GetByID(ctx, p.AuthorID, &author); err != nil {
		s.compensateCreate(ctx, id)
		return nil, appErr.Wrap(err, appErr.CodeNotFound, "couldn't assign an author to the project")
	}
	if err := s.users.AddProject(ctx, author.ID, id); err != nil {
		s.compensateCreate(ctx, id)
		return nil, appErr.Wrap(err, appErr.CodeNotFound, "couldn't assign an author to the project")
	}

	if s.cache != nil {
		s.cache.Del(ctx, listCacheKey)
	}
	return p, nil
}

func (s *projectService) compensateCreate(ctx context.Context, id primitive.ObjectID) {
	if err := s.projects.Delete(ctx, id); err != nil {
		logger.L().Error("compensating project delete failed",
			zap.String("project_id", id.Hex()), zap.Error(err))
	}
}

// Update replaces the project after checking that the payload's declared
// author matches the authenticated requester. A sentinel logo keeps the
// stored image fields; the creation date is always preserved.
func (s *projectService) Update(ctx context.Context, id, requesterID primitive.ObjectID, p *models.Project) (*models.Project, error) {
	if p.AuthorID != requesterID {
		return nil, appErr.New(appErr.CodeForbidden, "couldn't update the project")
	}

	var existing models.Project
	if err := s.projects.GetByID(ctx, id, &existing); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeNotFound, "no projects found")
	}

	p.ID = existing.ID
	p.CreationDate = existing.CreationDate
	if p.Logo == models.DefaultLogo {
		p.Logo = existing.Logo
		p.LogoBackup = existing.LogoBackup
	}

	if err := s.projects.Replace(ctx, id, p); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Del(ctx, listCacheKey)
	}
	return p, nil
}

// Delete looks up the project's true author from storage and compares it
// to the requester; only the author may delete. On success the project is
// removed and the reference best-effort filtered out of the author's list.
// Deletion proceeds even if the author-side update fails.
func (s *projectService) Delete(ctx context.Context, id, requesterID primitive.ObjectID) error {
	var p models.Project
	if err := s.projects.GetByID(ctx, id, &p); err != nil {
		return appErr.Wrap(err, appErr.CodeNotFound, "couldn't delete any project")
	}
	if p.AuthorID != requesterID {
		return appErr.New(appErr.CodeForbidden, "couldn't delete any project")
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		return appErr.Wrap(err, appErr.CodeNotFound, "couldn't delete any project")
	}

	if err := s.users.RemoveProject(ctx, p.AuthorID, id); err != nil {
		logger.L().Warn("could not remove project from author's list",
			zap.String("project_id", id.Hex()),
			zap.String("author_id", p.AuthorID.Hex()),
			zap.Error(err))
	}

	if s.cache != nil {
		s.cache.Del(ctx, listCacheKey)
	}
	return nil
}
