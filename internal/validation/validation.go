// Package validation checks user-authored records before they reach the
// store. The store itself enforces only NOT NULL and foreign keys.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"retail-records/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		_ = validate.RegisterValidation("email_tld", func(fl validator.FieldLevel) bool {
			return IsEmail(fl.Field().String())
		})
	})
	return validate
}

// IsEmail reports whether s has the form local@domain.tld with a TLD of at
// least two letters.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Customer validates a customer record. An empty email is allowed.
func Customer(c domain.Customer) error {
	return check(c)
}

// Product validates a product record.
func Product(p domain.Product) error {
	return check(p)
}

// Order validates the shape of an order: both references chosen and an ISO
// date. Whether the references exist is checked by the order service.
func Order(o domain.Order) error {
	return check(o)
}

func check(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return domain.NewValidationError(fe.Field(), message(fe))
}

func message(fe validator.FieldError) string {
	switch fe.Field() {
	case "name":
		if fe.StructNamespace() == "Product.Name" {
			return "Название обязательно для заполнения"
		}
		return "ФИО обязательно для заполнения"
	case "email":
		return "Некорректный формат email. Правильный формат: имя@домен.зона"
	case "price":
		return "Цена должна быть положительным числом"
	case "customerId", "productId":
		return "Выберите клиента и товар"
	case "date":
		return "Некорректный формат даты. Используйте ГГГГ-ММ-ДД"
	}
	return fe.Error()
}
