// Package forms validates user input before anything is sent to the API.
//
// Each form returns the cleaned value together with FieldErrors. A non-empty
// FieldErrors blocks submission: the caller shows the messages next to the
// fields and sends nothing.
package forms

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/pharmadesk/internal/client/models"
	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field name to a human-readable message.
type FieldErrors map[string]string

// Fields returns the field names with errors in stable order.
func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for k := range fe {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// messages per field and failed tag
var messages = map[string]map[string]string{
	"name":        {"required": "Name is required"},
	"description": {"required": "Description is required"},
	"price": {
		"required":       "Price is required",
		"positive_price": "Price must be a number greater than 0",
	},
	"email": {
		"required": "Email is required",
		"email":    "Enter a valid email address",
	},
	"password": {"required": "Password is required"},
}

var validate = sync.OnceValue(func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	if err := v.RegisterValidation("positive_price", validatePositivePrice); err != nil {
		panic(err)
	}
	return v
})

// validatePositivePrice accepts a decimal string that parses to a finite
// number which is still greater than zero once rounded to two decimals.
func validatePositivePrice(fl validator.FieldLevel) bool {
	v, err := models.ParsePrice(fl.Field().String())
	return err == nil && models.RoundPrice(v) > 0
}

func check(form any) FieldErrors {
	err := validate().Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": err.Error()}
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		msg, ok := messages[field][fe.Tag()]
		if !ok {
			msg = field + " is invalid"
		}
		out[field] = msg
	}
	return out
}

// ProductForm holds the raw values of the create-product form.
type ProductForm struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description" validate:"required"`
	Price       string `form:"price" validate:"required,positive_price"`
}

// Validate trims the text fields and checks the form. On success the draft
// carries the price rounded to two decimals.
func (f ProductForm) Validate() (models.ProductDraft, FieldErrors) {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	f.Price = strings.TrimSpace(f.Price)

	if errs := check(f); len(errs) > 0 {
		return models.ProductDraft{}, errs
	}

	price, _ := models.ParsePrice(f.Price)
	return models.ProductDraft{
		Name:        f.Name,
		Description: f.Description,
		Price:       models.Price(models.RoundPrice(price)),
	}, nil
}

// LoginForm holds the raw values of the login form.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// Validate trims the email and checks both fields. The password is kept as typed.
func (f LoginForm) Validate() (models.Credentials, FieldErrors) {
	f.Email = strings.TrimSpace(f.Email)

	if errs := check(f); len(errs) > 0 {
		return models.Credentials{}, errs
	}
	return models.Credentials{Email: f.Email, Password: f.Password}, nil
}
