package dto

type AddFundsRequestDTO struct {
	Amount int `json:"amount" example:"500" validate:"required,gt=0"`
}

type AddFundsResponseDTO struct {
	Message         string `json:"message" example:"Funds added"`
	UserID          int    `json:"user_id" example:"1"`
	PreviousBalance int    `json:"previous_balance" example:"100"`
	CurrentBalance  int    `json:"current_balance" example:"600"`
}
