package services

import (
	"context"
	"os"
	"sort"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/widescope/api/internal/models"
	appErr "github.com/widescope/api/pkg/errors"
	"github.com/widescope/api/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests (required by services)
	_, err := logger.Init("info", "json")
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

// fakeUserRepo is an in-memory UserRepository keyed by object id.
type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User

	failAddProject bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) (primitive.ObjectID, error) {
	for _, existing := range f.users {
		if existing.Name == u.Name {
			return primitive.NilObjectID, appErr.New(appErr.CodeConflict, "entity already exists")
		}
	}
	id := primitive.NewObjectID()
	cp := *u
	cp.ID = id
	f.users[id] = &cp
	return id, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID, dest *models.User) error {
	u, ok := f.users[id]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	*dest = *u
	return nil
}

func (f *fakeUserRepo) Replace(ctx context.Context, id primitive.ObjectID, u *models.User) error {
	if _, ok := f.users[id]; !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	cp := *u
	cp.ID = id
	f.users[id] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.users[id]; !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) GetByName(ctx context.Context, name string, dest *models.User) error {
	for _, u := range f.users {
		if u.Name == name {
			*dest = *u
			return nil
		}
	}
	return appErr.New(appErr.CodeNotFound, "user not found")
}

func (f *fakeUserRepo) List(ctx context.Context, name string) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if name == "" || u.Name == name {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeUserRepo) AddProject(ctx context.Context, userID, projectID primitive.ObjectID) error {
	if f.failAddProject {
		return appErr.New(appErr.CodeInternal, "add project to user failed")
	}
	u, ok := f.users[userID]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "user not found")
	}
	for _, p := range u.Projects {
		if p == projectID {
			return nil
		}
	}
	u.Projects = append(u.Projects, projectID)
	return nil
}

func (f *fakeUserRepo) RemoveProject(ctx context.Context, userID, projectID primitive.ObjectID) error {
	u, ok := f.users[userID]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "user not found")
	}
	kept := u.Projects[:0]
	for _, p := range u.Projects {
		if p != projectID {
			kept = append(kept, p)
		}
	}
	u.Projects = kept
	return nil
}

func (f *fakeUserRepo) AddContact(ctx context.Context, userID primitive.ObjectID, contact string) error {
	u, ok := f.users[userID]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "user not found")
	}
	for _, c := range u.Contacts {
		if c == contact {
			return appErr.New(appErr.CodeNotFound, "requested friend is already a contact")
		}
	}
	u.Contacts = append(u.Contacts, contact)
	return nil
}

// fakeProjectRepo is an in-memory ProjectRepository.
type fakeProjectRepo struct {
	projects map[primitive.ObjectID]*models.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[primitive.ObjectID]*models.Project{}}
}

func (f *fakeProjectRepo) Create(ctx context.Context, p *models.Project) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *p
	cp.ID = id
	f.projects[id] = &cp
	return id, nil
}

func (f *fakeProjectRepo) GetByID(ctx context.Context, id primitive.ObjectID, dest *models.Project) error {
	p, ok := f.projects[id]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	*dest = *p
	return nil
}

func (f *fakeProjectRepo) Replace(ctx context.Context, id primitive.ObjectID, p *models.Project) error {
	if _, ok := f.projects[id]; !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	cp := *p
	cp.ID = id
	f.projects[id] = &cp
	return nil
}

func (f *fakeProjectRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.projects[id]; !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeProjectRepo) List(ctx context.Context, limit, offset int64) ([]models.Project, error) {
	var all []models.Project
	for _, p := range f.projects {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreationDate.After(all[j].CreationDate) })
	if offset >= int64(len(all)) {
		return nil, nil
	}
	all = all[offset:]
	if limit < int64(len(all)) {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeProjectRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.projects)), nil
}

func (f *fakeProjectRepo) ListByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Project, error) {
	var out []models.Project
	for _, p := range f.projects {
		if p.AuthorID == authorID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreationDate.After(out[j].CreationDate) })
	return out, nil
}
