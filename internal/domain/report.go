package domain

// ProductSales is one row of the top-products aggregate.
type ProductSales struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// DailyOrders is one row of the order-dynamics aggregate.
type DailyOrders struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}
