package get_user_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/bookings"
)

const (
	msgMissingActor  = "отсутствует аутентификация"
	msgForbidden     = "доступ запрещен"
	msgInvalidStatus = "некорректный статус бронирования"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/bookings?status=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	userID := mux.Vars(r)["userId"]

	var status *domain.BookingStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		candidate := domain.BookingStatus(raw)
		if !isKnownStatus(candidate) {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		status = &candidate
	}

	list, err := h.service.ListForActor(r.Context(), actor, userID, status)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /users/{id}/bookings - Access denied: user=%s, requested=%s", actor.UserID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /users/{id}/bookings - Failed to list bookings: user=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainList(list))
}

func isKnownStatus(s domain.BookingStatus) bool {
	for _, known := range domain.AllBookingStatuses {
		if known == s {
			return true
		}
	}
	return false
}
