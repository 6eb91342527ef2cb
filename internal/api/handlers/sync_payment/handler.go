package sync_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/payments"
)

const (
	msgMissingActor        = "отсутствует аутентификация"
	msgPaymentNotFound     = "платёж не найден"
	msgProviderUnavailable = "платёжный провайдер временно недоступен"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/{paymentId}/sync
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetActor(r.Context()); !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	paymentID := mux.Vars(r)["paymentId"]

	payment, err := h.service.SyncStatus(r.Context(), paymentID)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("POST /payments/{id}/sync - Payment not found: payment=%s", paymentID)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, payments.ErrProviderUnavailable):
			h.logger.Error("POST /payments/{id}/sync - Provider unavailable: payment=%s", paymentID)
			handlers.RespondError(w, http.StatusBadGateway, msgProviderUnavailable)

		default:
			h.logger.Error("POST /payments/{id}/sync - Sync failed: payment=%s, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/{id}/sync - Payment synced: payment=%s status=%s", payment.ID, payment.Status)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(payment))
}
