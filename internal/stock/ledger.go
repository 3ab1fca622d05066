package stock

// Ledger owns all stock state. Every decrement goes through Reserve so that
// check-then-decrement stays atomic per product; nothing else in the system
// mutates stock directly.
type Ledger interface {
	// CheckAvailable reports whether the product is active and has at
	// least qty units on hand.
	CheckAvailable(productID int64, qty int) bool

	// Reserve atomically decrements stock by qty. It fails with
	// *domain.InsufficientStockError carrying the quantity actually
	// available when stock is short or the product is inactive.
	Reserve(productID int64, qty int) error

	// Release returns qty units to the product's available stock. It is
	// the compensating action for a reservation made earlier in the same
	// checkout.
	Release(productID int64, qty int) error

	// SetStock sets the absolute stock level and active flag for a
	// product, creating the entry if needed.
	SetStock(productID int64, qty int, active bool)

	// Available returns the current stock level, or 0 for unknown
	// products.
	Available(productID int64) int
}
