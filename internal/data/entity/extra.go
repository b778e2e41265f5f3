package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExtraCategory string

const (
	ExtraCategoryDrink ExtraCategory = "drink"
	ExtraCategorySnack ExtraCategory = "snack"
)

type ExtraStatus string

const (
	ExtraStatusActive   ExtraStatus = "active"
	ExtraStatusInactive ExtraStatus = "inactive"
)

// Extra is a sellable concession add-on. Only active extras may appear in
// new orders.
type Extra struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Category    ExtraCategory   `db:"category"`
	Price       decimal.Decimal `db:"price"`
	Image       string          `db:"image"`
	Status      ExtraStatus     `db:"status"`
	CreatedAt   time.Time       `db:"created_at"`
}
