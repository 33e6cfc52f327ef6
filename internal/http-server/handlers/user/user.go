package user

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"cms-api/internal/domain/models"
	req "cms-api/internal/lib/api/request"
	resp "cms-api/internal/lib/api/response"
	"cms-api/internal/lib/jwt"
	"cms-api/internal/lib/logger/sl"
	"cms-api/internal/service/user"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
)

//go:generate go run github.com/vektra/mockery/v2@v2.28.2 --name=Service
type Service interface {
	Register(ctx context.Context, name, email, password string) (int64, error)
	Login(ctx context.Context, email, password string) (string, error)
	UserByID(ctx context.Context, id int64) (models.User, error)
}

type User struct {
	log     *slog.Logger
	service Service
	auth    *jwtauth.JWTAuth
}

func New(log *slog.Logger, service Service, auth *jwtauth.JWTAuth) *User {
	return &User{
		log:     log,
		service: service,
		auth:    auth,
	}
}

// publicUser is what other users may see of an account.
type publicUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type userResponse struct {
	resp.Response
	User any `json:"user"`
}

func (u *User) Register() func(r chi.Router) {
	return func(r chi.Router) {
		// Public routes
		r.Post("/login", u.login)
		r.Post("/register", u.register)
		r.Get("/{id}", u.getByID)

		// Require auth
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(u.auth))
			r.Use(jwtauth.Authenticator(u.auth))

			r.Get("/me", u.me)
		})
	}
}

func (u *User) login(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.login"

	log := u.log.With(slog.String("op", op))

	var cred req.Credentials
	if err := render.Bind(r, &cred); err != nil {
		log.Debug("failed to decode request", sl.Error(err))
		resp.Error(w, r, http.StatusBadRequest, "invalid credentials: "+err.Error())
		return
	}

	// Send to service layer
	token, err := u.service.Login(r.Context(), cred.Email, cred.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			resp.Error(w, r, http.StatusUnauthorized, user.ErrInvalidCredentials.Error())
			return
		}
		log.Error("failed to login", sl.Error(err))
		resp.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	// Write response
	render.JSON(w, r, resp.Response{
		Status: resp.StatusOk,
		Token:  token,
	})
}

func (u *User) register(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.register"

	log := u.log.With(slog.String("op", op))

	var reg req.Registration
	if err := render.Bind(r, &reg); err != nil {
		log.Debug("failed to decode request", sl.Error(err))
		resp.Error(w, r, http.StatusBadRequest, "invalid request")
		return
	}

	// Send to service layer
	id, err := u.service.Register(r.Context(), reg.Name, reg.Email, reg.Password)
	if err != nil {
		if errors.Is(err, user.ErrUserExists) {
			resp.Error(w, r, http.StatusConflict, "user already exists")
			return
		}
		if resp.ServiceError(w, r, err) {
			return
		}
		log.Error("failed to register new user", sl.Error(err))
		resp.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	// Write response
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resp.Response{
		Status: resp.StatusOk,
		ID:     id,
	})
}

func (u *User) getByID(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.getByID"

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		resp.Error(w, r, http.StatusBadRequest, "invalid user id")
		return
	}

	usr, err := u.service.UserByID(r.Context(), id)
	if err != nil {
		u.fail(w, r, op, err)
		return
	}

	render.JSON(w, r, userResponse{
		Response: resp.OK(),
		User:     publicUser{ID: usr.ID, Name: usr.Name},
	})
}

func (u *User) me(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.me"

	caller := jwt.CallerFromContext(r.Context())
	if !caller.Authenticated() {
		resp.Error(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	usr, err := u.service.UserByID(r.Context(), caller.UserID)
	if err != nil {
		u.fail(w, r, op, err)
		return
	}

	render.JSON(w, r, userResponse{
		Response: resp.OK(),
		User:     usr,
	})
}

func (u *User) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if resp.ServiceError(w, r, err) {
		return
	}
	u.log.Error("request failed", slog.String("op", op), sl.Error(err))
	resp.Error(w, r, http.StatusInternalServerError, "internal error")
}
