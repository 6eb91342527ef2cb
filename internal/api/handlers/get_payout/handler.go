package get_payout

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/payouts"
)

const (
	msgMissingActor = "отсутствует аутентификация"
	msgNotFound     = "выплата не найдена"
	msgForbidden    = "доступ запрещен"
)

type Handler struct {
	service PayoutService
	logger  Logger
}

func NewHandler(service PayoutService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/payouts/{payoutId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	payoutID := mux.Vars(r)["payoutId"]

	payout, items, err := h.service.GetWithItems(r.Context(), actor, payoutID)
	if err != nil {
		switch {
		case errors.Is(err, payouts.ErrPayoutNotFound):
			h.logger.Warn("GET /payouts/{id} - Payout not found: payout=%s", payoutID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payouts.ErrAccessDenied):
			h.logger.Warn("GET /payouts/{id} - Access denied: payout=%s, user=%s", payoutID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /payouts/{id} - Failed to get payout: payout=%s, error=%v", payoutID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(payout, items))
}
