package transition_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	transitionBooking "github.com/m04kA/SMC-MarketplaceService/internal/usecase/transition_booking"
)

const (
	msgMissingActor      = "отсутствует аутентификация"
	msgNotFound          = "бронирование не найдено"
	msgForbidden         = "доступ запрещен"
	msgInvalidTransition = "переход недопустим для текущего статуса бронирования"
	msgStatusConflict    = "статус бронирования изменился, повторите запрос"
)

type Handler struct {
	useCase TransitionBookingUseCase
	logger  Logger
}

func NewHandler(useCase TransitionBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleTo возвращает обработчик перехода в целевой статус.
// Один handler на все маршруты жизненного цикла: accept, reject,
// on-my-way, arrive, start, finish, complete, dispute, cancel.
func (h *Handler) HandleTo(target domain.BookingStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingActor)
			return
		}

		bookingID := mux.Vars(r)["bookingId"]

		result, err := h.useCase.Execute(r.Context(), &transitionBooking.Request{
			Actor:     actor,
			BookingID: bookingID,
			Target:    target,
		})
		if err != nil {
			switch {
			case errors.Is(err, transitionBooking.ErrInvalidInput):
				h.logger.Warn("%s %s - Invalid input: %v", r.Method, r.URL.Path, err)
				handlers.RespondBadRequest(w, err.Error())

			case errors.Is(err, transitionBooking.ErrBookingNotFound):
				h.logger.Warn("%s %s - Booking not found: booking=%s", r.Method, r.URL.Path, bookingID)
				handlers.RespondNotFound(w, msgNotFound)

			case errors.Is(err, transitionBooking.ErrInvalidTransition):
				h.logger.Warn("%s %s - Invalid transition to %s: booking=%s", r.Method, r.URL.Path, target, bookingID)
				handlers.RespondConflict(w, msgInvalidTransition)

			case errors.Is(err, transitionBooking.ErrAccessDenied):
				h.logger.Warn("%s %s - Access denied: booking=%s, user=%s", r.Method, r.URL.Path, bookingID, actor.UserID)
				handlers.RespondForbidden(w, msgForbidden)

			case errors.Is(err, transitionBooking.ErrStatusConflict):
				h.logger.Warn("%s %s - Concurrent status change: booking=%s", r.Method, r.URL.Path, bookingID)
				handlers.RespondConflict(w, msgStatusConflict)

			default:
				h.logger.Error("%s %s - Transition failed: booking=%s, error=%v", r.Method, r.URL.Path, bookingID, err)
				handlers.RespondInternalError(w)
			}
			return
		}

		h.logger.Info("%s %s - Booking moved to %s: booking=%s, user=%s",
			r.Method, r.URL.Path, result.Status, result.ID, actor.UserID)
		handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
	}
}
