package carapi

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
}

func validDraft() Draft {
	return Draft{
		Brand:   "Toyota",
		Model:   "Corolla",
		Year:    "2019",
		Color:   "Red",
		Price:   "15000",
		Mileage: "42000",
	}
}

func TestValidateDraft_Valid(t *testing.T) {
	v := NewValidator(fixedNow)
	d := validDraft()
	d.Brand = "  Toyota "
	d.ImageURL = "https://cdn.example.com/c.jpg"

	car, err := v.ValidateDraft(d)
	require.NoError(t, err)
	assert.Equal(t, NewCar{
		Brand:    "Toyota",
		Model:    "Corolla",
		Year:     2019,
		Color:    "Red",
		Price:    15000,
		Mileage:  42000,
		ImageURL: "https://cdn.example.com/c.jpg",
	}, car)
}

func TestValidateDraft_ReportsEveryViolationInFormOrder(t *testing.T) {
	v := NewValidator(fixedNow)
	d := Draft{
		Brand:    "   ",
		Model:    "",
		Year:     "1800",
		Color:    "",
		Price:    "-1",
		Mileage:  "lots",
		ImageURL: "not a url",
	}

	_, err := v.ValidateDraft(d)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, []string{
		"brand is required",
		"model is required",
		"year must be between 1900 and 2026",
		"color is required",
		"price must be a non-negative number",
		"mileage must be a number",
		"image_url must be a valid URL",
	}, FieldErrors(err))
}

func TestValidateDraft_YearBounds(t *testing.T) {
	v := NewValidator(fixedNow)
	cases := map[string]bool{
		"1899":   false,
		"1900":   true,
		"2026":   true,
		"2027":   false,
		"2019.5": false,
		"2019.0": true,
		"":       false,
	}
	for year, ok := range cases {
		d := validDraft()
		d.Year = year
		_, err := v.ValidateDraft(d)
		if ok {
			assert.NoError(t, err, "year %q", year)
		} else {
			assert.ErrorIs(t, err, ErrValidation, "year %q", year)
		}
	}
}

func TestValidateDraft_NumbersMustBeFiniteAndNonNegative(t *testing.T) {
	v := NewValidator(fixedNow)
	for _, price := range []string{"NaN", "Inf", "-0.01", "twelve"} {
		d := validDraft()
		d.Price = price
		_, err := v.ValidateDraft(d)
		assert.ErrorIs(t, err, ErrValidation, "price %q", price)
	}

	d := validDraft()
	d.Price = "0"
	d.Mileage = "0"
	_, err := v.ValidateDraft(d)
	assert.NoError(t, err)
}

func TestValidateDraft_OptionalFieldsMayBeBlank(t *testing.T) {
	v := NewValidator(fixedNow)
	d := validDraft()
	d.Description = "   "
	d.ImageURL = ""
	car, err := v.ValidateDraft(d)
	require.NoError(t, err)
	assert.Empty(t, car.Description)
	assert.Empty(t, car.ImageURL)
}

func TestValidateNewCar_TypedPayload(t *testing.T) {
	v := NewValidator(fixedNow)

	ok := NewCar{Brand: "Toyota", Model: "Corolla", Year: 2019, Color: "Red", Price: 15000, Mileage: 42000}
	assert.NoError(t, v.ValidateNewCar(ok))

	bad := NewCar{Model: "Corolla", Year: 1850, Color: "Red", Price: -1, ImageURL: "nope"}
	err := v.ValidateNewCar(bad)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, []string{
		"brand is required",
		"year must be between 1900 and 2026",
		"price must be a non-negative number",
		"image_url must be a valid URL",
	}, FieldErrors(err))
}
