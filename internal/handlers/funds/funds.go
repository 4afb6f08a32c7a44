package funds

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ddanilin/virtshop/internal/apperrors"
	"github.com/ddanilin/virtshop/internal/dto"
	"github.com/ddanilin/virtshop/internal/service/fundsservice"
	"github.com/ddanilin/virtshop/pkg/auth"
	"github.com/ddanilin/virtshop/pkg/utils"
)

type Service interface {
	AddFunds(ctx context.Context, userID, amount int, idempotencyHash string) (*fundsservice.AddFundsResult, error)
}

type FundsHandler struct {
	fundsService Service
}

func New(fundsService Service) *FundsHandler {
	return &FundsHandler{
		fundsService: fundsService,
	}
}

// AddFunds godoc
//
//	@Summary		Add funds to a user balance
//	@Description	Credit the authenticated user's balance. Retries carrying the same Idempotency-Key and body replay the original reply without charging twice.
//	@Tags			Funds
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			user_id			path		int						true	"User ID"
//	@Param			Idempotency-Key	header		string					true	"Idempotency key"
//	@Param			request			body		dto.AddFundsRequestDTO	true	"Amount to credit"
//	@Success		200				{object}	dto.AddFundsResponseDTO	"Updated balance"
//	@Failure		400				{object}	utils.Response			"Invalid request"
//	@Failure		401				{object}	utils.Response			"User not authorized"
//	@Failure		403				{object}	utils.Response			"Foreign user balance"
//	@Failure		404				{object}	utils.Response			"User not found"
//	@Failure		500				{object}	utils.Response			"Internal server error"
//	@Router			/api/users/{user_id}/add-funds [post]
func (h *FundsHandler) AddFunds(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	pathID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if pathID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "cannot top up another user's balance")
		return
	}

	idempotencyKey := r.Header.Get("Idempotency-Key")
	if idempotencyKey == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Idempotency-Key header is required")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	var req dto.AddFundsRequestDTO
	if err := json.Unmarshal(body, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash := utils.IdempotencyHash(userID, idempotencyKey, body)
	result, err := h.fundsService.AddFunds(r.Context(), userID, req.Amount, hash)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, apperrors.ErrNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.AddFundsResponseDTO{
		Message:         result.Message,
		UserID:          result.UserID,
		PreviousBalance: result.PreviousBalance,
		CurrentBalance:  result.CurrentBalance,
	})
}
