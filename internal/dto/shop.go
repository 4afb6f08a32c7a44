package dto

type PurchaseRequestDTO struct {
	Quantity int `json:"quantity" example:"1" validate:"required,gt=0"`
}

type PurchaseResponseDTO struct {
	Message   string `json:"message" example:"Product purchased"`
	ProductID int    `json:"product_id" example:"2"`
	Price     int    `json:"price" example:"100"`
	Balance   int    `json:"balance" example:"900"`
}

type ConsumeRequestDTO struct {
	Quantity int `json:"quantity" example:"1" validate:"required,gt=0"`
}

type ConsumeResponseDTO struct {
	Message          string `json:"message" example:"Product consumed"`
	ProductID        int    `json:"product_id" example:"2"`
	ProductName      string `json:"product_name" example:"Health potion"`
	PreviousQuantity int    `json:"previous_quantity" example:"3"`
	CurrentQuantity  int    `json:"current_quantity" example:"2"`
}
