package filter

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"retail-records/internal/domain"
)

// Sorter orders rows by a named column. Text columns are compared with the
// collation rules of the configured language.
type Sorter struct {
	tag language.Tag
}

// NewSorter returns a Sorter for the BCP-47 locale; unknown tags fall back
// to Russian.
func NewSorter(locale string) *Sorter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Russian
	}
	return &Sorter{tag: tag}
}

// CustomerColumns, ProductColumns and OrderColumns list the sortable columns.
var (
	CustomerColumns = []string{"id", "name", "phone", "email", "address"}
	ProductColumns  = []string{"id", "name", "price"}
	OrderColumns    = []string{"id", "customer", "phone", "product", "price", "date"}
)

type cell struct {
	text  string
	num   float64
	isNum bool
}

func text(s string) cell { return cell{text: s} }
func num(v float64) cell { return cell{num: v, isNum: true} }

func (s *Sorter) sort(n int, key func(i int) cell, swap func(i, j int), desc bool) {
	col := collate.New(s.tag, collate.IgnoreCase)
	less := func(i, j int) bool {
		a, b := key(i), key(j)
		var c int
		if a.isNum {
			switch {
			case a.num < b.num:
				c = -1
			case a.num > b.num:
				c = 1
			}
		} else {
			c = col.CompareString(a.text, b.text)
		}
		if desc {
			return c > 0
		}
		return c < 0
	}
	sort.Stable(sorter{n: n, less: less, swap: swap})
}

type sorter struct {
	n    int
	less func(i, j int) bool
	swap func(i, j int)
}

func (s sorter) Len() int           { return s.n }
func (s sorter) Less(i, j int) bool { return s.less(i, j) }
func (s sorter) Swap(i, j int)      { s.swap(i, j) }

func unknown(column string, valid []string) error {
	return fmt.Errorf("unknown sort column %q (valid: %v)", column, valid)
}

// Customers sorts rows in place by column.
func (s *Sorter) Customers(rows []domain.Customer, column string, desc bool) error {
	var key func(i int) cell
	switch column {
	case "id":
		key = func(i int) cell { return num(float64(rows[i].ID)) }
	case "name":
		key = func(i int) cell { return text(rows[i].Name) }
	case "phone":
		key = func(i int) cell { return text(rows[i].Phone) }
	case "email":
		key = func(i int) cell { return text(rows[i].Email) }
	case "address":
		key = func(i int) cell { return text(rows[i].Address) }
	default:
		return unknown(column, CustomerColumns)
	}
	s.sort(len(rows), key, func(i, j int) { rows[i], rows[j] = rows[j], rows[i] }, desc)
	return nil
}

// Products sorts rows in place by column.
func (s *Sorter) Products(rows []domain.Product, column string, desc bool) error {
	var key func(i int) cell
	switch column {
	case "id":
		key = func(i int) cell { return num(float64(rows[i].ID)) }
	case "name":
		key = func(i int) cell { return text(rows[i].Name) }
	case "price":
		key = func(i int) cell { return num(rows[i].Price) }
	default:
		return unknown(column, ProductColumns)
	}
	s.sort(len(rows), key, func(i, j int) { rows[i], rows[j] = rows[j], rows[i] }, desc)
	return nil
}

// Orders sorts rows in place by column.
func (s *Sorter) Orders(rows []domain.OrderView, column string, desc bool) error {
	var key func(i int) cell
	switch column {
	case "id":
		key = func(i int) cell { return num(float64(rows[i].ID)) }
	case "customer":
		key = func(i int) cell { return text(rows[i].CustomerName) }
	case "phone":
		key = func(i int) cell { return text(rows[i].CustomerPhone) }
	case "product":
		key = func(i int) cell { return text(rows[i].ProductName) }
	case "price":
		key = func(i int) cell { return num(rows[i].ProductPrice) }
	case "date":
		key = func(i int) cell { return text(rows[i].Date) }
	default:
		return unknown(column, OrderColumns)
	}
	s.sort(len(rows), key, func(i, j int) { rows[i], rows[j] = rows[j], rows[i] }, desc)
	return nil
}
