package get_pro_earnings

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
	msgForbidden    = "доступ запрещен"
)

type Handler struct {
	payoutService  PayoutService
	earningService EarningService
	logger         Logger
}

func NewHandler(payoutService PayoutService, earningService EarningService, logger Logger) *Handler {
	return &Handler{
		payoutService:  payoutService,
		earningService: earningService,
		logger:         logger,
	}
}

// Handle GET /api/v1/pros/{proProfileId}/earnings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	proProfileID := mux.Vars(r)["proProfileId"]

	earnings, total, err := h.payoutService.ListPayableEarnings(r.Context(), actor, proProfileID)
	if err != nil {
		switch {
		case errors.Is(err, payouts.ErrAccessDenied):
			h.logger.Warn("GET /pros/{id}/earnings - Access denied: pro=%s, user=%s", proProfileID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /pros/{id}/earnings - Failed to list earnings: pro=%s, error=%v", proProfileID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	stats, err := h.earningService.GetProStats(r.Context(), proProfileID)
	if err != nil {
		h.logger.Error("GET /pros/{id}/earnings - Failed to get stats: pro=%s, error=%v", proProfileID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ToResponse(proProfileID, earnings, total, stats))
}
