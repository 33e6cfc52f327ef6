package httpserver

import (
	"log/slog"
	"net/http"

	"cms-api/internal/http-server/handlers/article"
	"cms-api/internal/http-server/handlers/review"
	"cms-api/internal/http-server/handlers/user"
	"cms-api/internal/http-server/middleware/metrics"
	resp "cms-api/internal/lib/api/response"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
)

type Services struct {
	Articles article.Service
	Ratings  article.RatingService
	Reviews  review.Service
	Users    user.Service
}

// NewRouter wires every handler. m may be nil to disable metrics.
func NewRouter(log *slog.Logger, svc Services, auth *jwtauth.JWTAuth, m *metrics.Metrics) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))
	if m != nil {
		r.Use(m.Middleware)
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, resp.OK())
	})

	art := article.New(log, svc.Articles, svc.Ratings, auth)
	rev := review.New(log, svc.Reviews, auth)
	usr := user.New(log, svc.Users, auth)

	r.Route("/articles", art.Register())
	r.Route("/reviews", rev.Register())
	r.Route("/users", usr.Register())

	return r
}
