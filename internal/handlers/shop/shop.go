package shop

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
	"github.com/ddanilin/virtshop/internal/service/purchaseservice"
	"github.com/ddanilin/virtshop/pkg/auth"
	"github.com/ddanilin/virtshop/pkg/utils"
)

type Service interface {
	AddPurchase(ctx context.Context, productID, userID, quantity int, idempotencyHash string) (*purchaseservice.PurchaseResult, error)
	ConsumeProduct(ctx context.Context, productID, userID, quantity int, idempotencyHash string) (*purchaseservice.ConsumeResult, error)
}

type ShopHandler struct {
	purchaseService Service
}

func New(purchaseService Service) *ShopHandler {
	return &ShopHandler{
		purchaseService: purchaseService,
	}
}

// Purchase godoc
//
//	@Summary		Purchase a product
//	@Description	Charge the authenticated user the product price and grant the requested units. Retries carrying the same Idempotency-Key replay the original reply without charging twice.
//	@Tags			Shop
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			product_id		path		int						true	"Product ID"
//	@Param			Idempotency-Key	header		string					true	"Idempotency key"
//	@Param			request			body		dto.PurchaseRequestDTO	true	"Units to purchase"
//	@Success		200				{object}	dto.PurchaseResponseDTO	"Purchase receipt"
//	@Failure		400				{object}	utils.Response			"Invalid request"
//	@Failure		401				{object}	utils.Response			"User not authorized"
//	@Failure		404				{object}	utils.Response			"Product not found"
//	@Failure		409				{object}	utils.Response			"Concurrent purchase conflict"
//	@Failure		500				{object}	utils.Response			"Internal server error"
//	@Router			/api/products/{product_id}/purchase [post]
func (h *ShopHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	productID, err := strconv.Atoi(chi.URLParam(r, "product_id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid product id")
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
	var req dto.PurchaseRequestDTO
	if err := json.Unmarshal(body, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash := utils.IdempotencyHash(userID, idempotencyKey, body)
	result, err := h.purchaseService.AddPurchase(r.Context(), productID, userID, req.Quantity, hash)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.PurchaseResponseDTO{
		Message:   result.Message,
		ProductID: result.ProductID,
		Price:     result.Price,
		Balance:   result.Balance,
	})
}

// Consume godoc
//
//	@Summary		Use owned product units
//	@Description	Spend units of a product the authenticated user owns and refresh the cached inventory view.
//	@Tags			Shop
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			product_id		path		int						true	"Product ID"
//	@Param			Idempotency-Key	header		string					true	"Idempotency key"
//	@Param			request			body		dto.ConsumeRequestDTO	true	"Units to consume"
//	@Success		200				{object}	dto.ConsumeResponseDTO	"Remaining quantity"
//	@Failure		400				{object}	utils.Response			"Invalid request"
//	@Failure		401				{object}	utils.Response			"User not authorized"
//	@Failure		404				{object}	utils.Response			"Product not owned"
//	@Failure		500				{object}	utils.Response			"Internal server error"
//	@Router			/api/products/{product_id}/use [post]
func (h *ShopHandler) Consume(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	productID, err := strconv.Atoi(chi.URLParam(r, "product_id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid product id")
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
	var req dto.ConsumeRequestDTO
	if err := json.Unmarshal(body, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash := utils.IdempotencyHash(userID, idempotencyKey, body)
	result, err := h.purchaseService.ConsumeProduct(r.Context(), productID, userID, req.Quantity, hash)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.ConsumeResponseDTO{
		Message:          result.Message,
		ProductID:        result.ProductID,
		ProductName:      result.ProductName,
		PreviousQuantity: result.PreviousQuantity,
		CurrentQuantity:  result.CurrentQuantity,
	})
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
