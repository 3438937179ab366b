// Package exporter writes records as CSV in the same layout the importer
// reads back.
package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"retail-records/internal/domain"
)

var (
	CustomerHeader = []string{"ФИО", "Телефон", "Email", "Адрес"}
	ProductHeader  = []string{"Название", "Цена"}
	OrderHeader    = []string{"ID клиента", "ID товара", "Дата заказа"}
)

type CustomerSource interface {
	List(ctx context.Context) ([]domain.Customer, error)
}

type ProductSource interface {
	List(ctx context.Context) ([]domain.Product, error)
}

type OrderSource interface {
	List(ctx context.Context) ([]domain.Order, error)
}

// Customers writes every customer without its identity and returns the
// number of rows written.
func Customers(ctx context.Context, w io.Writer, src CustomerSource) (int, error) {
	rows, err := src.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list customers: %w", err)
	}
	records := make([][]string, 0, len(rows))
	for _, c := range rows {
		records = append(records, []string{c.Name, c.Phone, c.Email, c.Address})
	}
	return len(records), write(w, CustomerHeader, records)
}

// Products writes name and price of every product.
func Products(ctx context.Context, w io.Writer, src ProductSource) (int, error) {
	rows, err := src.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list products: %w", err)
	}
	records := make([][]string, 0, len(rows))
	for _, p := range rows {
		records = append(records, []string{p.Name, domain.FormatPrice(p.Price)})
	}
	return len(records), write(w, ProductHeader, records)
}

// Orders writes raw (customer id, product id, date) triples, not the joined
// view.
func Orders(ctx context.Context, w io.Writer, src OrderSource) (int, error) {
	rows, err := src.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list orders: %w", err)
	}
	records := make([][]string, 0, len(rows))
	for _, o := range rows {
		records = append(records, []string{
			strconv.FormatInt(o.CustomerID, 10),
			strconv.FormatInt(o.ProductID, 10),
			o.Date,
		})
	}
	return len(records), write(w, OrderHeader, records)
}

func write(w io.Writer, header []string, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}
