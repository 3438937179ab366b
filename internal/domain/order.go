package domain

import "fmt"

// DateLayout is the storage format of Order.Date.
const DateLayout = "2006-01-02"

// Order links one customer to one product on a calendar date.
type Order struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customerId" validate:"gt=0"`
	ProductID  int64  `json:"productId" validate:"gt=0"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
}

func (o Order) String() string {
	return fmt.Sprintf("Order(id=%s, customer_id=%d, product_id=%d, date=%s)", formatID(o.ID), o.CustomerID, o.ProductID, o.Date)
}

// OrderView is the display-ready projection of an order joined with its
// customer and product. Orders whose customer or product no longer exists
// never appear as an OrderView.
type OrderView struct {
	ID            int64   `json:"id"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	ProductName   string  `json:"productName"`
	ProductPrice  float64 `json:"productPrice"`
	Date          string  `json:"date"`
}
