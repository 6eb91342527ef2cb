package sync_payout

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/payouts"
)

const (
	msgMissingActor        = "отсутствует аутентификация"
	msgNotFound            = "выплата не найдена"
	msgForbidden           = "доступ запрещен"
	msgProviderUnavailable = "провайдер выплат временно недоступен"
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

// Handle POST /api/v1/payouts/{payoutId}/sync
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	payoutID := mux.Vars(r)["payoutId"]

	payout, err := h.service.SyncStatus(r.Context(), actor, payoutID)
	if err != nil {
		switch {
		case errors.Is(err, payouts.ErrPayoutNotFound):
			h.logger.Warn("POST /payouts/{id}/sync - Payout not found: payout=%s", payoutID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payouts.ErrAccessDenied):
			h.logger.Warn("POST /payouts/{id}/sync - Access denied: payout=%s, user=%s", payoutID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, payouts.ErrProviderUnavailable):
			h.logger.Error("POST /payouts/{id}/sync - Provider unavailable: payout=%s", payoutID)
			handlers.RespondError(w, http.StatusBadGateway, msgProviderUnavailable)

		default:
			h.logger.Error("POST /payouts/{id}/sync - Sync failed: payout=%s, error=%v", payoutID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payouts/{id}/sync - Payout synced: payout=%s status=%s", payout.ID, payout.Status)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(payout))
}
