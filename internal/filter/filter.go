// Package filter narrows and orders record lists in memory, the way the
// list screens present them.
package filter

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"retail-records/internal/domain"
)

// contains reports whether needle occurs in haystack ignoring case. An empty
// needle always matches.
func contains(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	// A Caser keeps state and must not be shared between goroutines.
	folder := cases.Fold()
	return strings.Contains(folder.String(haystack), folder.String(needle))
}

// ParseBound turns user text into a range bound. Blank or unparsable text
// yields nil, meaning unbounded.
func ParseBound(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

type CustomerFilter struct {
	Name  string
	Phone string
	Email string
}

// Customers keeps rows matching every non-empty field of f.
func Customers(rows []domain.Customer, f CustomerFilter) []domain.Customer {
	out := make([]domain.Customer, 0, len(rows))
	for _, c := range rows {
		if contains(c.Name, f.Name) && contains(c.Phone, f.Phone) && contains(c.Email, f.Email) {
			out = append(out, c)
		}
	}
	return out
}

type ProductFilter struct {
	Name     string
	MinPrice *float64
	MaxPrice *float64
}

// Products keeps rows whose name matches and whose price lies in the
// inclusive range [MinPrice, MaxPrice].
func Products(rows []domain.Product, f ProductFilter) []domain.Product {
	out := make([]domain.Product, 0, len(rows))
	for _, p := range rows {
		if !contains(p.Name, f.Name) {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	return out
}

// OrderFilter narrows the joined order view. Customer matches either the
// customer name or phone. Dates are ISO strings compared inclusively.
type OrderFilter struct {
	Customer string
	Product  string
	DateFrom string
	DateTo   string
}

func Orders(rows []domain.OrderView, f OrderFilter) []domain.OrderView {
	from := strings.TrimSpace(f.DateFrom)
	to := strings.TrimSpace(f.DateTo)

	out := make([]domain.OrderView, 0, len(rows))
	for _, v := range rows {
		if !contains(v.CustomerName, f.Customer) && !contains(v.CustomerPhone, f.Customer) {
			continue
		}
		if !contains(v.ProductName, f.Product) {
			continue
		}
		if from != "" && v.Date < from {
			continue
		}
		if to != "" && v.Date > to {
			continue
		}
		out = append(out, v)
	}
	return out
}
