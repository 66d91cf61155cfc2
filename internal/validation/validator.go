package validation

import (
	"fmt"
	"math"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator with custom struct-level validation registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// totals are exact int64 sums; reject requests whose sum cannot be represented
	v.RegisterStructValidation(createOrderStructValidation, CreateOrderRequest{})

	return v
}

func createOrderStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CreateOrderRequest)

	var sum int64
	for i, it := range req.Items {
		if it.Quantity <= 0 || it.Price < 0 {
			// field-level tags report these
			continue
		}
		if it.Price > math.MaxInt64/it.Quantity {
			sl.ReportError(it.Price, fmt.Sprintf("items[%d].price", i), "Price", "subtotal_overflow", "")
			return
		}
		sub := it.Price * it.Quantity
		if sum > math.MaxInt64-sub {
			sl.ReportError(req.Items, "items", "Items", "total_overflow", "")
			return
		}
		sum += sub
	}
}
