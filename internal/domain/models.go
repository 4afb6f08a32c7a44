package domain

import (
	"time"

	"github.com/ddanilin/virtshop/internal/apperrors"
)

const (
	// ConsumableProduct can be bought and used up any number of times.
	ConsumableProduct string = "CONSUMABLE"
	// PermanentProduct can be owned at most once per user.
	PermanentProduct string = "PERMANENT"
)

const (
	PendingTransaction   string = "PENDING"
	CompletedTransaction string = "COMPLETED"
	FailedTransaction    string = "FAILED"
)

type User struct {
	ID        int       `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	Balance   int       `db:"balance"`
	CreatedAt time.Time `db:"created_at"`
}

// AddFunds credits the balance. Amount must be positive and within the
// configured per-request limit.
func (u *User) AddFunds(amount, maxAllowed int) error {
	if amount > maxAllowed {
		return apperrors.ErrAmountExceedsLimit
	}
	if amount <= 0 {
		return apperrors.ErrAmountNotPositive
	}
	u.Balance += amount
	return nil
}

// RemoveFunds debits the balance. The balance never goes negative.
func (u *User) RemoveFunds(amount int) error {
	if amount > u.Balance {
		return apperrors.ErrInsufficientBalance
	}
	if amount <= 0 {
		return apperrors.ErrAmountNotPositive
	}
	u.Balance -= amount
	return nil
}

type Product struct {
	ID          int       `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Price       int       `db:"price"`
	Type        string    `db:"type"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
}

type Inventory struct {
	ID          int       `db:"id"`
	UserID      int       `db:"user_id"`
	ProductID   int       `db:"product_id"`
	Quantity    int       `db:"quantity"`
	PurchasedAt time.Time `db:"purchased_at"`

	// Product is populated by repository reads that join the product row.
	Product *Product `db:"-"`
}

func NewInventory(user *User, product *Product, quantity int) *Inventory {
	return &Inventory{
		UserID:      user.ID,
		ProductID:   product.ID,
		Quantity:    quantity,
		PurchasedAt: time.Now(),
		Product:     product,
	}
}

// UpdateQuantity adds purchased units to an already owned inventory row.
// Permanent products are capped at a single unit, and the owner must still
// be able to pay the product price.
func (i *Inventory) UpdateQuantity(user *User, quantity int) error {
	if i.Product.Type == PermanentProduct && i.Quantity == 1 {
		return apperrors.ErrAlreadyOwned
	}
	if user.Balance < i.Product.Price {
		return apperrors.ErrInsufficientBalance
	}
	i.Quantity += quantity
	return nil
}

// DecreaseQuantity consumes units. The quantity never goes negative.
func (i *Inventory) DecreaseQuantity(quantity int) error {
	if i.Quantity-quantity < 0 {
		return apperrors.ErrInsufficientStock
	}
	i.Quantity -= quantity
	return nil
}

type Transaction struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	ProductID int       `db:"product_id"`
	Amount    int       `db:"amount"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

// PopularProduct is the aggregated purchase-count view behind the analytics
// endpoint; it is derived from completed transactions, never stored.
type PopularProduct struct {
	ProductID     int    `db:"product_id" json:"product_id"`
	Name          string `db:"name" json:"name"`
	Price         int    `db:"price" json:"price"`
	Type          string `db:"type" json:"type"`
	PurchaseCount int    `db:"purchase_count" json:"purchase_count"`
}
