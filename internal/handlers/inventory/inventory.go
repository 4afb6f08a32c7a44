package inventory

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ddanilin/virtshop/internal/domain"
	"github.com/ddanilin/virtshop/internal/dto"
	"github.com/ddanilin/virtshop/internal/service/inventoryservice"
	"github.com/ddanilin/virtshop/pkg/auth"
	"github.com/ddanilin/virtshop/pkg/utils"
)

type Service interface {
	ShowInventory(ctx context.Context, userID int) ([]inventoryservice.InventoryItem, error)
	ShowPopularProducts(ctx context.Context, limit int, startDate time.Time) ([]domain.PopularProduct, error)
}

type InventoryHandler struct {
	inventoryService Service
}

func New(inventoryService Service) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// GetInventory godoc
//
//	@Summary		Get user inventory
//	@Description	List the products the authenticated user owns, served from the cached view when it is warm.
//	@Tags			Inventory
//	@Security		BearerAuth
//	@Produce		json
//	@Param			user_id	path		int								true	"User ID"
//	@Success		200		{array}		dto.InventoryItemResponseDTO	"Owned products"
//	@Failure		400		{object}	utils.Response					"Invalid request"
//	@Failure		401		{object}	utils.Response					"User not authorized"
//	@Failure		403		{object}	utils.Response					"Foreign user inventory"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/users/{user_id}/inventory [get]
func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	pathID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if pathID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "cannot view another user's inventory")
		return
	}

	items, err := h.inventoryService.ShowInventory(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch inventory")
		return
	}

	response := make([]dto.InventoryItemResponseDTO, len(items))
	for i, item := range items {
		response[i] = dto.InventoryItemResponseDTO{
			ProductID:   item.ProductID,
			Name:        item.Name,
			Type:        item.Type,
			Price:       item.Price,
			Quantity:    item.Quantity,
			PurchasedAt: item.PurchasedAt,
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetPopularProducts godoc
//
//	@Summary		Get popular products
//	@Description	Rank products by completed purchase volume over a window. Defaults to the top 5 over the last 7 days.
//	@Tags			Analytics
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit		query		int								false	"Ranking size"
//	@Param			start_date	query		string							false	"Window start, YYYY-MM-DD"
//	@Success		200			{array}		dto.PopularProductResponseDTO	"Ranked products"
//	@Failure		400			{object}	utils.Response					"Invalid request"
//	@Failure		401			{object}	utils.Response					"User not authorized"
//	@Failure		500			{object}	utils.Response					"Internal server error"
//	@Router			/api/analytics/popular-products [get]
func (h *InventoryHandler) GetPopularProducts(w http.ResponseWriter, r *http.Request) {
	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	var startDate time.Time
	if raw := r.URL.Query().Get("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid start_date")
			return
		}
		startDate = parsed
	}

	products, err := h.inventoryService.ShowPopularProducts(r.Context(), limit, startDate)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch popular products")
		return
	}

	response := make([]dto.PopularProductResponseDTO, len(products))
	for i, p := range products {
		response[i] = dto.PopularProductResponseDTO{
			ProductID:     p.ProductID,
			Name:          p.Name,
			Price:         p.Price,
			Type:          p.Type,
			PurchaseCount: p.PurchaseCount,
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}
