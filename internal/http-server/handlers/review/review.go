package review

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

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

//go:generate go run github.com/vektra/mockery/v2@v2.28.2 --name=Service
type Service interface {
	Create(ctx context.Context, caller models.Caller, articleID int64, in models.ReviewInput) (int64, error)
	Get(ctx context.Context, id int64) (models.Review, error)
	Update(ctx context.Context, caller models.Caller, id int64, in models.ReviewInput) error
	Delete(ctx context.Context, caller models.Caller, id int64) error
}

type Review struct {
	log     *slog.Logger
	service Service
	auth    *jwtauth.JWTAuth
}

func New(log *slog.Logger, service Service, auth *jwtauth.JWTAuth) *Review {
	return &Review{
		log:     log,
		service: service,
		auth:    auth,
	}
}

type reviewResponse struct {
	resp.Response
	Review models.Review `json:"review"`
}

func (rv *Review) Register() func(r chi.Router) {
	return func(r chi.Router) {
		r.Get("/{id}", rv.getReview)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(rv.auth))

			r.Post("/", rv.createReview)
			r.Put("/{id}", rv.correctReview)
			r.Delete("/{id}", rv.removeReview)
		})
	}
}

func (rv *Review) getReview(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.getReview"

	id, ok := rv.reviewID(w, r)
	if !ok {
		return
	}

	rev, err := rv.service.Get(r.Context(), id)
	if err != nil {
		rv.fail(w, r, op, err)
		return
	}

	render.JSON(w, r, reviewResponse{
		Response: resp.OK(),
		Review:   rev,
	})
}

func (rv *Review) createReview(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.createReview"

	// Anonymous callers are turned away before the payload is looked at.
	caller := jwt.CallerFromContext(r.Context())
	if !caller.Authenticated() {
		resp.Error(w, r, http.StatusUnauthorized, service.ErrUnauthenticated.Error())
		return
	}

	var body req.Review
	if err := render.Bind(r, &body); err != nil {
		rv.bindFail(w, r, op, err)
		return
	}

	if body.ArticleID < 1 {
		resp.Error(w, r, http.StatusBadRequest, "invalid article id")
		return
	}

	id, err := rv.service.Create(r.Context(), caller, body.ArticleID, body.Input())
	if err != nil {
		rv.fail(w, r, op, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resp.Response{
		Status: resp.StatusOk,
		ID:     id,
	})
}

func (rv *Review) correctReview(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.correctReview"

	id, ok := rv.reviewID(w, r)
	if !ok {
		return
	}

	var body req.Review
	if err := render.Bind(r, &body); err != nil {
		rv.bindFail(w, r, op, err)
		return
	}

	err := rv.service.Update(r.Context(), jwt.CallerFromContext(r.Context()), id, body.Input())
	if err != nil {
		rv.fail(w, r, op, err)
		return
	}

	render.JSON(w, r, resp.OK())
}

func (rv *Review) removeReview(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.removeReview"

	id, ok := rv.reviewID(w, r)
	if !ok {
		return
	}

	err := rv.service.Delete(r.Context(), jwt.CallerFromContext(r.Context()), id)
	if err != nil {
		rv.fail(w, r, op, err)
		return
	}

	render.JSON(w, r, resp.OK())
}

func (rv *Review) reviewID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		resp.Error(w, r, http.StatusBadRequest, "invalid review id")
		return 0, false
	}
	return id, true
}

// bindFail reports a missing rating as a validation error and anything else as a bad request.
func (rv *Review) bindFail(w http.ResponseWriter, r *http.Request, op string, err error) {
	rv.log.Debug("failed to decode request", slog.String("op", op), sl.Error(err))
	if resp.ServiceError(w, r, err) {
		return
	}
	resp.Error(w, r, http.StatusBadRequest, "invalid request")
}

func (rv *Review) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if resp.ServiceError(w, r, err) {
		rv.log.Debug("request rejected", slog.String("op", op), sl.Error(err))
		return
	}
	rv.log.Error("request failed", slog.String("op", op), sl.Error(err))
	resp.Error(w, r, http.StatusInternalServerError, "internal error")
}
