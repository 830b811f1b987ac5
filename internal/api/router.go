package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/widescope/api/internal/api/handlers"
	mw "github.com/widescope/api/internal/api/middleware"
	"github.com/widescope/api/internal/chat"
)

type Dependencies struct {
	HMACSecret      []byte
	ClientOrigin    string
	UsersHandler    *handlers.UsersHandler
	ProjectsHandler *handlers.ProjectsHandler
	ChatHub         *chat.Hub
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	// Built-in middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS(dep.ClientOrigin))
	r.Use(mw.RateLimit(10, 20))
	r.Use(chimid.Compress(5))

	// Health endpoints
	hh := handlers.NewHealthHandler()
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	// Static serving of locally stored uploads
	r.Handle("/public/*", http.StripPrefix("/public/", http.FileServer(http.Dir("public"))))

	r.Route("/users", func(ur chi.Router) {
		ur.Post("/sign-up", dep.UsersHandler.SignUp)
		ur.Post("/log-in", dep.UsersHandler.LogIn)
		ur.Get("/", dep.UsersHandler.List)
		ur.Get("/{userId}", dep.UsersHandler.Get)

		ur.Group(func(protected chi.Router) {
			protected.Use(mw.Auth(dep.HMACSecret))
			protected.Patch("/friends/{friendId}", dep.UsersHandler.AddFriend)
		})
	})

	r.Route("/projects", func(pr chi.Router) {
		pr.Get("/all", dep.ProjectsHandler.All)
		pr.Get("/author/{userId}", dep.ProjectsHandler.ByAuthor)
		pr.Get("/{projectId}", dep.ProjectsHandler.Get)

		pr.Group(func(protected chi.Router) {
			protected.Use(mw.Auth(dep.HMACSecret))
			protected.Post("/new", dep.ProjectsHandler.Create)
			protected.Put("/update/{projectId}", dep.ProjectsHandler.Update)
			protected.Delete("/delete/{projectId}", dep.ProjectsHandler.Delete)
		})
	})

	r.Get("/chat/{userId}", chat.Handler(dep.ChatHub))

	return r
}
