package entity

// SaleExtra is a (sale, extra, quantity) ledger line recording which
// add-ons were part of a sale. Created alongside its Sale in the same
// transaction; quantity is always positive.
type SaleExtra struct {
	ID       int64 `db:"id"`
	SaleID   int64 `db:"sale_id"`
	ExtraID  int64 `db:"extra_id"`
	Quantity int   `db:"quantity"`
}
