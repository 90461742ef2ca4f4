package carapi

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// MinYear is the oldest model year accepted for new cars.
const MinYear = 1900

// Validator checks drafts before they are sent. The zero value is not usable;
// construct with NewValidator.
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

// NewValidator returns a Validator whose upper year bound follows now. A nil
// now uses time.Now.
func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	val := &Validator{v: validator.New(validator.WithRequiredStructEnabled()), now: now}
	val.v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = val.v.RegisterValidation("caryear", func(fl validator.FieldLevel) bool {
		year := int(fl.Field().Int())
		return year >= MinYear && year <= val.maxYear()
	})
	_ = val.v.RegisterValidation("imageurl", func(fl validator.FieldLevel) bool {
		return isWellFormedURL(fl.Field().String())
	})
	return val
}

var defaultValidator = NewValidator(nil)

// ValidateDraft validates d against the current calendar year.
func ValidateDraft(d Draft) (NewCar, error) {
	return defaultValidator.ValidateDraft(d)
}

func (val *Validator) maxYear() int {
	return val.now().Year()
}

// ValidateDraft coerces and validates a draft in one pass. On failure the
// returned error has kind ErrValidation and carries every violated rule.
func (val *Validator) ValidateDraft(d Draft) (NewCar, error) {
	car := NewCar{
		Brand:       strings.TrimSpace(d.Brand),
		Model:       strings.TrimSpace(d.Model),
		Color:       strings.TrimSpace(d.Color),
		Description: strings.TrimSpace(d.Description),
		ImageURL:    strings.TrimSpace(d.ImageURL),
	}

	var msgs []string
	skip := map[string]bool{}

	if year, msg := parseWhole("year", d.Year, "an integer"); msg != "" {
		msgs = append(msgs, msg)
		skip["year"] = true
	} else {
		car.Year = year
	}
	if price, msg := parseNumber("price", d.Price); msg != "" {
		msgs = append(msgs, msg)
		skip["price"] = true
	} else {
		car.Price = price
	}
	if mileage, msg := parseWhole("mileage", d.Mileage, "a number"); msg != "" {
		msgs = append(msgs, msg)
		skip["mileage"] = true
	} else {
		car.Mileage = mileage
	}

	rules, err := val.ruleMessages(car, skip)
	if err != nil {
		return NewCar{}, fmt.Errorf("validate draft: %w", err)
	}
	msgs = append(msgs, rules...)

	if len(msgs) > 0 {
		return NewCar{}, invalidCar(msgs)
	}
	return car, nil
}

// ValidateNewCar checks a payload that is already typed, such as a decoded
// POST body.
func (val *Validator) ValidateNewCar(car NewCar) error {
	msgs, err := val.ruleMessages(car, nil)
	if err != nil {
		return fmt.Errorf("validate car: %w", err)
	}
	if len(msgs) > 0 {
		return invalidCar(msgs)
	}
	return nil
}

// ruleMessages runs the struct tags of NewCar, leaving out fields in skip.
func (val *Validator) ruleMessages(car NewCar, skip map[string]bool) ([]string, error) {
	err := val.v.Struct(car)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if skip[fe.Field()] {
			continue
		}
		msgs = append(msgs, val.message(fe))
	}
	return msgs, nil
}

func invalidCar(msgs []string) *Error {
	return &Error{
		Kind:    ErrValidation,
		Message: "invalid car data",
		Fields:  orderMessages(msgs),
	}
}

func (val *Validator) message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "caryear":
		return fmt.Sprintf("year must be between %d and %d", MinYear, val.maxYear())
	case "gte":
		return fmt.Sprintf("%s must be a non-negative number", fe.Field())
	case "imageurl":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// fieldOrder keeps messages in form order regardless of which pass found them.
var fieldOrder = []string{"brand", "model", "year", "color", "price", "mileage", "description", "image_url"}

func orderMessages(msgs []string) []string {
	out := make([]string, 0, len(msgs))
	used := make([]bool, len(msgs))
	for _, field := range fieldOrder {
		for i, msg := range msgs {
			if !used[i] && strings.HasPrefix(msg, field+" ") {
				out = append(out, msg)
				used[i] = true
			}
		}
	}
	for i, msg := range msgs {
		if !used[i] {
			out = append(out, msg)
		}
	}
	return out
}

func parseWhole(field, raw, kind string) (int, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, field + " is required"
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Sprintf("%s must be %s", field, kind)
		}
		n = int(f)
	}
	return n, ""
}

func parseNumber(field, raw string) (float64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, field + " is required"
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, field + " must be a number"
	}
	return f, ""
}

func isWellFormedURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
