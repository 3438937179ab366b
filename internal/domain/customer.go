package domain

import "fmt"

// Customer is a buyer record. ID 0 means the record has not been stored yet.
type Customer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email_tld"`
	Address string `json:"address,omitempty"`
}

func (c Customer) String() string {
	return fmt.Sprintf("Customer(id=%s, name=%s)", formatID(c.ID), c.Name)
}

func formatID(id int64) string {
	if id == 0 {
		return "none"
	}
	return fmt.Sprintf("%d", id)
}
