package create_preauth

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
	msgBookingNotFound     = "бронирование не найдено"
	msgForbidden           = "доступ запрещен"
	msgPreauthRejected     = "платёж отклонён провайдером"
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

// Handle POST /api/v1/bookings/{bookingId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	bookingID := mux.Vars(r)["bookingId"]

	payment, err := h.service.CreatePreauthForBooking(r.Context(), actor, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/payment - Booking not found: booking=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/payment - Access denied: booking=%s, user=%s", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, payments.ErrPreauthRejected):
			h.logger.Warn("POST /bookings/{id}/payment - Preauth rejected: booking=%s", bookingID)
			handlers.RespondUnprocessable(w, msgPreauthRejected)

		case errors.Is(err, payments.ErrProviderUnavailable):
			h.logger.Error("POST /bookings/{id}/payment - Provider unavailable: booking=%s", bookingID)
			handlers.RespondError(w, http.StatusBadGateway, msgProviderUnavailable)

		default:
			h.logger.Error("POST /bookings/{id}/payment - Failed to create preauth: booking=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/payment - Preauth ready: payment=%s booking=%s status=%s",
		payment.ID, bookingID, payment.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(payment))
}
