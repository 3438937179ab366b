package domain

import (
	"fmt"
	"strconv"
)

// Product is a catalogue item. Price must be positive when authored by a user;
// the store itself accepts any value.
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gt=0"`
}

func (p Product) String() string {
	return fmt.Sprintf("Product(id=%s, name=%s, price=%s)", formatID(p.ID), p.Name, FormatPrice(p.Price))
}

// FormatPrice renders a price without trailing zeros (50000, 199.99).
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
