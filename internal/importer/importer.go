package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"retail-records/internal/domain"
)

// Kind selects which entity a CSV file holds.
type Kind string

const (
	Customers Kind = "customers"
	Products  Kind = "products"
	Orders    Kind = "orders"
)

// ParseKind validates a user-supplied kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Customers, Products, Orders:
		return k, nil
	}
	return "", fmt.Errorf("unknown import kind %q (want customers, products or orders)", s)
}

type CustomerWriter interface {
	Add(ctx context.Context, c domain.Customer) (int64, error)
}

type ProductWriter interface {
	Add(ctx context.Context, p domain.Product) (int64, error)
}

type OrderWriter interface {
	Add(ctx context.Context, o domain.Order) (int64, error)
}

// Writers holds the sinks rows are written to. Only the one matching the
// importer's Kind is required.
type Writers struct {
	Customers CustomerWriter
	Products  ProductWriter
	Orders    OrderWriter
}

// CSVImporter reads one entity's CSV and adds every well-formed row. Rows
// added before a failing row stay committed.
type CSVImporter struct {
	kind    Kind
	reader  *csv.Reader
	writers Writers
}

func NewCSVImporter(kind Kind, r io.Reader, w Writers) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // short rows are skipped, not rejected
	return &CSVImporter{kind: kind, reader: csvr, writers: w}
}

// Run skips the header line and imports the remaining rows, returning how
// many were added.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	if err := i.checkWriter(); err != nil {
		return 0, err
	}

	if _, err := i.reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("read header: %w", err)
	}

	imported := 0
	for {
		if err := ctx.Err(); err != nil {
			return imported, err
		}
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line, _ := i.reader.FieldPos(0)

		added, err := i.save(ctx, record)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if added {
			imported++
		}
	}
	return imported, nil
}

func (i *CSVImporter) checkWriter() error {
	var ok bool
	switch i.kind {
	case Customers:
		ok = i.writers.Customers != nil
	case Products:
		ok = i.writers.Products != nil
	case Orders:
		ok = i.writers.Orders != nil
	default:
		return fmt.Errorf("unknown import kind %q", i.kind)
	}
	if !ok {
		return fmt.Errorf("no writer configured for %s", i.kind)
	}
	return nil
}

func (i *CSVImporter) save(ctx context.Context, record []string) (bool, error) {
	switch i.kind {
	case Customers:
		if len(record) < 4 {
			return false, nil
		}
		c := domain.Customer{
			Name:    strings.TrimSpace(record[0]),
			Phone:   strings.TrimSpace(record[1]),
			Email:   strings.TrimSpace(record[2]),
			Address: strings.TrimSpace(record[3]),
		}
		if _, err := i.writers.Customers.Add(ctx, c); err != nil {
			return false, fmt.Errorf("add customer %q: %w", c.Name, err)
		}
	case Products:
		if len(record) < 2 {
			return false, nil
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			price = 0
		}
		p := domain.Product{Name: strings.TrimSpace(record[0]), Price: price}
		if _, err := i.writers.Products.Add(ctx, p); err != nil {
			return false, fmt.Errorf("add product %q: %w", p.Name, err)
		}
	case Orders:
		if len(record) < 3 {
			return false, nil
		}
		customerID, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			return false, fmt.Errorf("invalid customer id %q", record[0])
		}
		productID, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
		if err != nil {
			return false, fmt.Errorf("invalid product id %q", record[1])
		}
		o := domain.Order{CustomerID: customerID, ProductID: productID, Date: strings.TrimSpace(record[2])}
		if _, err := i.writers.Orders.Add(ctx, o); err != nil {
			return false, fmt.Errorf("add order: %w", err)
		}
	}
	return true, nil
}
