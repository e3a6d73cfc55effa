package journal

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidTrade wraps every validation failure.
var ErrInvalidTrade = errors.New("invalid trade")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a trade at the journal-entry boundary. The analytics
// engine never calls it; it tolerates whatever the journal holds.
func Validate(t Trade) error {
	var problems []string

	if err := validate.Struct(t); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	}

	if !t.Quantity.IsPositive() {
		problems = append(problems, "quantity must be positive")
	}
	if t.EntryPrice.IsNegative() {
		problems = append(problems, "entry_price must not be negative")
	}
	if t.ExitPrice.IsNegative() {
		problems = append(problems, "exit_price must not be negative")
	}
	if t.AccountClass == Personal && t.FundingProvider != "" {
		problems = append(problems, "funding_provider is only allowed for FUNDED accounts")
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w %q: %s", ErrInvalidTrade, t.ID, strings.Join(problems, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "required_if":
		return fe.Field() + " is required for FUNDED accounts"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param())
	case "gtefield":
		return fe.Field() + " must not be before entry_time"
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}
