package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"retail-records/internal/domain"
	custrepo "retail-records/internal/repository/customer"
	orderrepo "retail-records/internal/repository/order"
	productrepo "retail-records/internal/repository/product"
)

//go:embed demo.yaml
var demoYAML []byte

// Fixture is a demo catalogue document.
type Fixture struct {
	Customers []domain.Customer `yaml:"customers"`
	Products  []domain.Product  `yaml:"products"`
	Orders    []orderSeed       `yaml:"orders"`
}

type orderSeed struct {
	Customer string `yaml:"customer"`
	Product  string `yaml:"product"`
	DaysAgo  int    `yaml:"days_ago"`
}

// Repos are the repositories the seed writes through.
type Repos struct {
	Customers custrepo.Repository
	Products  productrepo.Repository
	Orders    orderrepo.Repository
}

// Result counts what Apply inserted.
type Result struct {
	Customers int
	Products  int
	Orders    int
	Skipped   bool
}

// Load parses a fixture document.
func Load(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

// Apply inserts the embedded demo catalogue for manual testing. It does
// nothing when the store already holds customers.
func Apply(ctx context.Context, repos Repos, now time.Time) (Result, error) {
	f, err := Load(demoYAML)
	if err != nil {
		return Result{}, err
	}
	return f.apply(ctx, repos, now)
}

func (f *Fixture) apply(ctx context.Context, repos Repos, now time.Time) (Result, error) {
	var res Result

	existing, err := repos.Customers.List(ctx)
	if err != nil {
		return res, fmt.Errorf("list customers: %w", err)
	}
	if len(existing) > 0 {
		res.Skipped = true
		return res, nil
	}

	customerIDs := make(map[string]int64, len(f.Customers))
	for _, c := range f.Customers {
		id, err := repos.Customers.Add(ctx, c)
		if err != nil {
			return res, fmt.Errorf("add customer %q: %w", c.Name, err)
		}
		customerIDs[c.Name] = id
		res.Customers++
	}

	productIDs := make(map[string]int64, len(f.Products))
	for _, p := range f.Products {
		id, err := repos.Products.Add(ctx, p)
		if err != nil {
			return res, fmt.Errorf("add product %q: %w", p.Name, err)
		}
		productIDs[p.Name] = id
		res.Products++
	}

	for _, o := range f.Orders {
		cid, ok := customerIDs[o.Customer]
		if !ok {
			return res, fmt.Errorf("order refers to unknown customer %q", o.Customer)
		}
		pid, ok := productIDs[o.Product]
		if !ok {
			return res, fmt.Errorf("order refers to unknown product %q", o.Product)
		}
		order := domain.Order{
			CustomerID: cid,
			ProductID:  pid,
			Date:       now.AddDate(0, 0, -o.DaysAgo).Format(domain.DateLayout),
		}
		if _, err := repos.Orders.Add(ctx, order); err != nil {
			return res, fmt.Errorf("add order: %w", err)
		}
		res.Orders++
	}
	return res, nil
}
