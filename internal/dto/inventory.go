package dto

import "time"

type InventoryItemResponseDTO struct {
	ProductID   int       `json:"product_id" example:"2"`
	Name        string    `json:"name" example:"Health potion"`
	Type        string    `json:"type" example:"CONSUMABLE"`
	Price       int       `json:"price" example:"100"`
	Quantity    int       `json:"quantity" example:"3"`
	PurchasedAt time.Time `json:"purchased_at" example:"2024-03-01T12:00:00Z"`
}

type PopularProductResponseDTO struct {
	ProductID     int    `json:"product_id" example:"2"`
	Name          string `json:"name" example:"Health potion"`
	Price         int    `json:"price" example:"100"`
	Type          string `json:"type" example:"CONSUMABLE"`
	PurchaseCount int    `json:"purchase_count" example:"900"`
}
