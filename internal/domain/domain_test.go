package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordDefaults(t *testing.T) {
	var c Customer
	var p Product
	var o Order

	assert.Zero(t, c.ID)
	assert.Empty(t, c.Name)
	assert.Zero(t, p.Price)
	assert.Empty(t, o.Date)
}

func TestRecordString(t *testing.T) {
	assert.Equal(t, "Customer(id=1, name=Иван Иванов)", Customer{ID: 1, Name: "Иван Иванов", Phone: "+79161234567"}.String())
	assert.Equal(t, "Customer(id=none, name=Пётр)", Customer{Name: "Пётр"}.String())
	assert.Equal(t, "Product(id=101, name=Ноутбук, price=49999.99)", Product{ID: 101, Name: "Ноутбук", Price: 49999.99}.String())
	assert.Equal(t, "Order(id=1001, customer_id=1, product_id=101, date=2023-10-15)", Order{ID: 1001, CustomerID: 1, ProductID: 101, Date: "2023-10-15"}.String())
}

func TestStorageWrapping(t *testing.T) {
	base := errors.New("disk I/O error")
	err := Storage("customer add", base)

	var se *StorageError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, "customer add", se.Op)
	assert.ErrorIs(t, err, base)

	assert.Nil(t, Storage("x", nil))
	assert.Same(t, ErrNotFound, Storage("x", ErrNotFound))
	assert.Same(t, err, Storage("y", err))
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("save: %w", NewValidationError("email", "invalid format"))
	assert.ErrorAs(t, err, new(*ValidationError))
	assert.False(t, errors.As(errors.New("plain"), new(*ValidationError)))
	assert.Equal(t, "save: email: invalid format", err.Error())
}
