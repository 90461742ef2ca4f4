package carapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ID identifies a car. The API may send it as a JSON string or number; it is
// always kept in string form.
type ID string

// UnmarshalJSON accepts strings and numbers.
func (id *ID) UnmarshalJSON(data []byte) error {
	*id = ID(scalarString(data))
	return nil
}

func (id ID) String() string { return string(id) }

// Car mirrors a car record returned by the API. Every field is optional on
// read; numeric fields are nil when absent or malformed.
type Car struct {
	ID          ID       `json:"id,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Model       string   `json:"model,omitempty"`
	Year        *int     `json:"year,omitempty"`
	Color       string   `json:"color,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Mileage     *int     `json:"mileage,omitempty"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// UnmarshalJSON decodes a car field by field so a single malformed value does
// not discard the whole record.
func (c *Car) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Car{
		ID:          ID(scalarString(raw["id"])),
		Brand:       scalarString(raw["brand"]),
		Model:       scalarString(raw["model"]),
		Year:        scalarInt(raw["year"]),
		Color:       scalarString(raw["color"]),
		Price:       scalarFloat(raw["price"]),
		Mileage:     scalarInt(raw["mileage"]),
		Description: scalarString(raw["description"]),
		ImageURL:    scalarString(raw["image_url"]),
	}
	if c.ImageURL == "" {
		c.ImageURL = scalarString(raw["imageUrl"])
	}
	return nil
}

// Draft is the raw text of the create form, exactly as typed.
type Draft struct {
	Brand       string
	Model       string
	Year        string
	Color       string
	Price       string
	Mileage     string
	Description string
	ImageURL    string
}

// NewCar is a validated create payload.
type NewCar struct {
	Brand       string  `json:"brand" validate:"required"`
	Model       string  `json:"model" validate:"required"`
	Year        int     `json:"year" validate:"caryear"`
	Color       string  `json:"color" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Mileage     int     `json:"mileage" validate:"gte=0"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty" validate:"omitempty,imageurl"`
}

func scalarString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func scalarFloat(raw json.RawMessage) *float64 {
	s := strings.TrimSpace(scalarString(raw))
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func scalarInt(raw json.RawMessage) *int {
	f := scalarFloat(raw)
	if f == nil || *f != float64(int(*f)) {
		return nil
	}
	v := int(*f)
	return &v
}
