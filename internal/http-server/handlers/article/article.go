package article

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"cms-api/internal/domain/models"
	req "cms-api/internal/lib/api/request"
	resp "cms-api/internal/lib/api/response"
	"cms-api/internal/lib/jwt"
	"cms-api/internal/lib/logger/sl"
	"cms-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
)

const maxLimit = 100

//go:generate go run github.com/vektra/mockery/v2@v2.28.2 --name=Service
type Service interface {
	List(ctx context.Context, page models.Page) ([]models.ArticleSummary, error)
	Get(ctx context.Context, id int64) (models.ArticleDetail, error)
	GetBySlug(ctx context.Context, slug string) (models.ArticleDetail, error)
	Create(ctx context.Context, caller models.Caller, in models.ArticleInput) (int64, error)
	Update(ctx context.Context, caller models.Caller, id int64, in models.ArticleInput) error
	Delete(ctx context.Context, caller models.Caller, id int64) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.28.2 --name=RatingService
type RatingService interface {
	AggregateRating(ctx context.Context, articleID int64) (*float64, error)
}

type Article struct {
	log     *slog.Logger
	service Service
	ratings RatingService
	auth    *jwtauth.JWTAuth
}

func New(log *slog.Logger, service Service, ratings RatingService, auth *jwtauth.JWTAuth) *Article {
	return &Article{
		log:     log,
		service: service,
		ratings: ratings,
		auth:    auth,
	}
}

type listResponse struct {
	resp.Response
	Articles []models.ArticleSummary `json:"articles"`
}

type detailResponse struct {
	resp.Response
	Article models.ArticleDetail `json:"article"`
}

type ratingResponse struct {
	resp.Response
	ArticleID     int64    `json:"article_id"`
	AverageRating *float64 `json:"average_rating"`
}

func (a *Article) Register() func(r chi.Router) {
	return func(r chi.Router) {
		// Public routes
		r.Get("/", a.getAllArticles)
		r.Get("/slug/{slug}", a.getArticleBySlug)
		r.Get("/{id}", a.getArticleByID)
		r.Get("/{id}/rating", a.getRating)

		// Identity is optional here: the service rejects anonymous callers.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(a.auth))

			r.Post("/", a.createArticle)
			r.Put("/{id}", a.correctArticle)
			r.Delete("/{id}", a.removeArticle)
		})
	}
}

func (a *Article) getAllArticles(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.getAllArticles"

	log := a.log.With(slog.String("op", op))

	page, err := parsePage(r)
	if err != nil {
		resp.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	arts, err := a.service.List(r.Context(), page)
	if err != nil {
		log.Error("failed to list articles", sl.Error(err))
		resp.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	render.JSON(w, r, listResponse{
		Response: resp.OK(),
		Articles: arts,
	})
}

func (a *Article) getArticleByID(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.getArticleByID"

	id, ok := a.articleID(w, r)
	if !ok {
		return
	}

	art, err := a.service.Get(r.Context(), id)
	if err != nil {
		a.fail(w, r, op, err)
		return
	}

	render.JSON(w, r, detailResponse{
		Response: resp.OK(),
		Article:  art,
	})
}

func (a *Article) getArticleBySlug(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.getArticleBySlug"

	art, err := a.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		a.fail(w, r, op, err)
		return
	}

	render.JSON(w, r, detailResponse{
		Response: resp.OK(),
		Article:  art,
	})
}

func (a *Article) getRating(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.getRating"

	id, ok := a.articleID(w, r)
	if !ok {
		return
	}

	avg, err := a.ratings.AggregateRating(r.Context(), id)
	if err != nil {
		a.fail(w, r, op, err)
		return
	}

	render.JSON(w, r, ratingResponse{
		Response:      resp.OK(),
		ArticleID:     id,
		AverageRating: avg,
	})
}

func (a *Article) createArticle(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.createArticle"

	log := a.log.With(slog.String("op", op))

	caller := jwt.CallerFromContext(r.Context())
	if !caller.Authenticated() {
		resp.Error(w, r, http.StatusUnauthorized, service.ErrUnauthenticated.Error())
		return
	}

	var body req.Article
	if err := render.Bind(r, &body); err != nil {
		log.Debug("failed to decode request", sl.Error(err))
		resp.Error(w, r, http.StatusBadRequest, "invalid request")
		return
	}

	id, err := a.service.Create(r.Context(), caller, body.Input())
	if err != nil {
		a.fail(w, r, op, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resp.Response{
		Status: resp.StatusOk,
		ID:     id,
	})
}

func (a *Article) correctArticle(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.correctArticle"

	log := a.log.With(slog.String("op", op))

	id, ok := a.articleID(w, r)
	if !ok {
		return
	}

	var body req.Article
	if err := render.Bind(r, &body); err != nil {
		log.Debug("failed to decode request", sl.Error(err))
		resp.Error(w, r, http.StatusBadRequest, "invalid request")
		return
	}

	err := a.service.Update(r.Context(), jwt.CallerFromContext(r.Context()), id, body.Input())
	if err != nil {
		a.fail(w, r, op, err)
		return
	}

	render.JSON(w, r, resp.OK())
}

func (a *Article) removeArticle(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.removeArticle"

	id, ok := a.articleID(w, r)
	if !ok {
		return
	}

	err := a.service.Delete(r.Context(), jwt.CallerFromContext(r.Context()), id)
	if err != nil {
		a.fail(w, r, op, err)
		return
	}

	render.JSON(w, r, resp.OK())
}

func (a *Article) articleID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		resp.Error(w, r, http.StatusBadRequest, "invalid article id")
		return 0, false
	}
	return id, true
}

func (a *Article) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if resp.ServiceError(w, r, err) {
		a.log.Debug("request rejected", slog.String("op", op), sl.Error(err))
		return
	}
	a.log.Error("request failed", slog.String("op", op), sl.Error(err))
	resp.Error(w, r, http.StatusInternalServerError, "internal error")
}

func parsePage(r *http.Request) (models.Page, error) {
	var page models.Page

	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return models.Page{}, errors.New("invalid limit")
		}
		page.Limit = min(limit, maxLimit)
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("offset")); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return models.Page{}, errors.New("invalid offset")
		}
		page.Offset = offset
	}

	return page, nil
}
