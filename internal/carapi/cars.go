package carapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// CarService defines the four catalog operations. It is implemented by
// *Client and can be faked in tests.
type CarService interface {
	ListCars(ctx context.Context) ([]Car, error)
	GetCar(ctx context.Context, id ID) (Car, error)
	CreateCar(ctx context.Context, draft Draft) (Car, error)
	DeleteCar(ctx context.Context, id ID) (bool, error)
}

// Ensure Client implements CarService at compile time.
var _ CarService = (*Client)(nil)

const carsPath = "/api/cars"

func carPath(id ID) string {
	return carsPath + "/" + url.PathEscape(string(id))
}

// checkID rejects ids that cannot name a single car. "." and ".." survive
// path escaping and would be cleaned into a different endpoint.
func checkID(id ID) error {
	switch strings.TrimSpace(string(id)) {
	case "":
		return newError(ErrValidation, "car id is required")
	case ".", "..":
		return newError(ErrValidation, "invalid car id %q", string(id))
	}
	return nil
}

// ListCars fetches the whole collection. An empty collection is not an error.
func (c *Client) ListCars(ctx context.Context) ([]Car, error) {
	env, err := c.call(ctx, Request{Method: http.MethodGet, Path: carsPath})
	if err != nil {
		return nil, err
	}
	if !env.DataIsArray() {
		return nil, newError(ErrInvalidShape, "invalid data format: expected an array of cars")
	}
	var cars []Car
	if err := json.Unmarshal(env.Data, &cars); err != nil {
		return nil, &Error{Kind: ErrInvalidShape, Message: "invalid data format: expected an array of cars", Err: err}
	}
	if cars == nil {
		cars = []Car{}
	}
	return cars, nil
}

// GetCar fetches a single car.
func (c *Client) GetCar(ctx context.Context, id ID) (Car, error) {
	if err := checkID(id); err != nil {
		return Car{}, err
	}
	env, err := c.call(ctx, Request{Method: http.MethodGet, Path: carPath(id)})
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Kind == ErrNotFound {
			apiErr.Message = "car not found (404)"
		}
		return Car{}, err
	}
	if !env.HasData() || env.DataIsArray() {
		return Car{}, newError(ErrInvalidShape, "invalid data format: expected car data")
	}
	var car Car
	if err := json.Unmarshal(env.Data, &car); err != nil {
		return Car{}, &Error{Kind: ErrInvalidShape, Message: "invalid data format: expected car data", Err: err}
	}
	return car, nil
}

// CreateCar validates draft locally and, only when valid, posts it. Local
// validation failures never reach the network.
func (c *Client) CreateCar(ctx context.Context, draft Draft) (Car, error) {
	payload, err := ValidateDraft(draft)
	if err != nil {
		return Car{}, err
	}
	env, err := c.call(ctx, Request{Method: http.MethodPost, Path: carsPath, Body: payload})
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
			apiErr.Kind = ErrValidation
		}
		return Car{}, err
	}

	// Unwrap data when present, otherwise the body itself is the car.
	created := env.Data
	if !env.HasData() || env.DataIsArray() {
		if !env.BodyIsObject() {
			return Car{}, nil
		}
		created = env.Body
	}
	var car Car
	if err := json.Unmarshal(created, &car); err != nil {
		return Car{}, &Error{Kind: ErrInvalidShape, Message: "invalid data format: expected the created car", Err: err}
	}
	return car, nil
}

// DeleteCar removes a car. Deleting an already absent car succeeds.
func (c *Client) DeleteCar(ctx context.Context, id ID) (bool, error) {
	if err := checkID(id); err != nil {
		return false, err
	}
	raw, err := c.Do(ctx, Request{Method: http.MethodDelete, Path: carPath(id)})
	if err != nil {
		return false, err
	}
	if raw.Status == http.StatusNotFound {
		c.log.Debug("delete of absent car treated as success", zap.String("id", string(id)))
		return true, nil
	}
	// A 2xx with a non-JSON body still means the car is gone.
	if _, err := Interpret(raw); err != nil && !(raw.OK() && errors.Is(err, ErrMalformedJSON)) {
		return false, err
	}
	return true, nil
}

func (c *Client) call(ctx context.Context, req Request) (Envelope, error) {
	raw, err := c.Do(ctx, req)
	if err != nil {
		return Envelope{}, err
	}
	return Interpret(raw)
}
