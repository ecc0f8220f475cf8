package handlers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validationsOnce sync.Once

// registerBindingValidations installs custom validations on gin's binding
// validator. Registered once per process; route registration may run more
// than once in tests.
func registerBindingValidations() {
	validationsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		// dgt0 requires a decimal.Decimal field to be strictly positive.
		// The stock gt/gte validators only understand native numeric kinds.
		v.RegisterValidation("dgt0", func(fl validator.FieldLevel) bool {
			d, ok := fl.Field().Interface().(decimal.Decimal)
			if !ok {
				return false
			}
			return d.GreaterThan(decimal.Zero)
		})
	})
}
