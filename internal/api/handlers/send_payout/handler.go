package send_payout

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
	msgNotSendable         = "выплата не может быть отправлена из текущего статуса"
	msgProfileIncomplete   = "платёжные реквизиты исполнителя не заполнены"
	msgPayoutRejected      = "выплата отклонена провайдером"
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

// Handle POST /api/v1/payouts/{payoutId}/send
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	payoutID := mux.Vars(r)["payoutId"]

	payout, err := h.service.Send(r.Context(), actor, payoutID)
	if err != nil {
		switch {
		case errors.Is(err, payouts.ErrPayoutNotFound):
			h.logger.Warn("POST /payouts/{id}/send - Payout not found: payout=%s", payoutID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payouts.ErrAccessDenied):
			h.logger.Warn("POST /payouts/{id}/send - Access denied: payout=%s, user=%s", payoutID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, payouts.ErrPayoutNotSendable):
			h.logger.Warn("POST /payouts/{id}/send - Not sendable: payout=%s", payoutID)
			handlers.RespondConflict(w, msgNotSendable)

		case errors.Is(err, payouts.ErrPayoutProfileIncomplete):
			h.logger.Warn("POST /payouts/{id}/send - Incomplete payout profile: payout=%s", payoutID)
			handlers.RespondUnprocessable(w, msgProfileIncomplete)

		case errors.Is(err, payouts.ErrPayoutRejected):
			h.logger.Error("POST /payouts/{id}/send - Rejected by provider: payout=%s", payoutID)
			handlers.RespondUnprocessable(w, msgPayoutRejected)

		case errors.Is(err, payouts.ErrProviderUnavailable):
			h.logger.Error("POST /payouts/{id}/send - Provider unavailable: payout=%s", payoutID)
			handlers.RespondError(w, http.StatusBadGateway, msgProviderUnavailable)

		default:
			h.logger.Error("POST /payouts/{id}/send - Send failed: payout=%s, error=%v", payoutID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payouts/{id}/send - Payout sent: payout=%s status=%s", payout.ID, payout.Status)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(payout))
}
