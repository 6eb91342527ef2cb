package create_payout

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	createPayout "github.com/m04kA/SMC-MarketplaceService/internal/usecase/create_payout"
)

const (
	msgMissingActor     = "отсутствует аутентификация"
	msgForbidden        = "доступ запрещен"
	msgNothingToPayOut  = "нет невыплаченных заработков"
	msgPayoutInProgress = "агрегация выплаты уже выполняется"
)

type Handler struct {
	useCase CreatePayoutUseCase
	logger  Logger
}

func NewHandler(useCase CreatePayoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/pros/{proProfileId}/payouts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	proProfileID := mux.Vars(r)["proProfileId"]

	result, err := h.useCase.Execute(r.Context(), &createPayout.Request{
		Actor:        actor,
		ProProfileID: proProfileID,
	})
	if err != nil {
		switch {
		case errors.Is(err, createPayout.ErrInvalidInput):
			h.logger.Warn("POST /pros/{id}/payouts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createPayout.ErrAccessDenied):
			h.logger.Warn("POST /pros/{id}/payouts - Access denied: pro=%s, user=%s", proProfileID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createPayout.ErrNothingToPayOut):
			h.logger.Warn("POST /pros/{id}/payouts - Nothing to pay out: pro=%s", proProfileID)
			handlers.RespondUnprocessable(w, msgNothingToPayOut)

		case errors.Is(err, createPayout.ErrPayoutInProgress):
			h.logger.Warn("POST /pros/{id}/payouts - Aggregation in progress: pro=%s", proProfileID)
			handlers.RespondConflict(w, msgPayoutInProgress)

		default:
			h.logger.Error("POST /pros/{id}/payouts - Failed to create payout: pro=%s, error=%v", proProfileID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /pros/{id}/payouts - Payout created: payout=%s pro=%s amount=%d status=%s",
		result.ID, result.ProProfileID, result.Amount, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
