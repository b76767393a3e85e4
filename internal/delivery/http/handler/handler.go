package handler

import (
	"errors"
	"net/http"

	"clinic-appointment/internal/delivery/http/middleware"
	"clinic-appointment/internal/domain/entity"
	"clinic-appointment/internal/usecase"
	"clinic-appointment/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// writeError answers a failed usecase call. Errors without a known kind are
// logged and reported as fallback with a 500.
func writeError(w http.ResponseWriter, log *logrus.Logger, err error, fallback string) {
	if response.FromError(w, err) {
		return
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrInvalidToken),
		errors.Is(err, usecase.ErrTokenRevoked):
		response.Unauthorized(w, err.Error())
		return
	}

	log.Errorf("%s: %+v", fallback, err)
	response.InternalServerError(w, fallback)
}

func currentActor(w http.ResponseWriter, r *http.Request) (entity.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
	}
	return actor, ok
}

func uuidVar(w http.ResponseWriter, r *http.Request, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, message)
		return uuid.Nil, false
	}
	return id, true
}
