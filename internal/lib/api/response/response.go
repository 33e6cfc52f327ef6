package response

import (
	"errors"
	"net/http"

	"cms-api/internal/service"

	"github.com/go-chi/render"
)

const (
	StatusOk    = "OK"
	StatusError = "Error"
)

type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Token  string `json:"token,omitempty"`
	ID     int64  `json:"id,omitempty"`
}

func OK() Response {
	return Response{Status: StatusOk}
}

func Err(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// Error writes msg with the given HTTP status.
func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, Err(msg))
}

// ServiceError maps the service error kinds onto HTTP statuses.
// It reports false for errors it does not know, leaving them to the caller.
func ServiceError(w http.ResponseWriter, r *http.Request, err error) bool {
	var vErr *service.ValidationError

	switch {
	case errors.As(err, &vErr):
		Error(w, r, http.StatusUnprocessableEntity, vErr.Error())
	case errors.Is(err, service.ErrValidation):
		Error(w, r, http.StatusUnprocessableEntity, service.ErrValidation.Error())
	case errors.Is(err, service.ErrUnauthenticated):
		Error(w, r, http.StatusUnauthorized, service.ErrUnauthenticated.Error())
	case errors.Is(err, service.ErrForbidden):
		Error(w, r, http.StatusForbidden, service.ErrForbidden.Error())
	case errors.Is(err, service.ErrNotFound):
		Error(w, r, http.StatusNotFound, notFoundMessage(err))
	default:
		return false
	}
	return true
}

// notFoundMessage keeps the resource name ("article not found") without the op chain.
func notFoundMessage(err error) string {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if next := errors.Unwrap(e); next == service.ErrNotFound {
			return e.Error()
		}
	}
	return service.ErrNotFound.Error()
}
