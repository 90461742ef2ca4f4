// Package carapi provides the client for the remote cars REST API.
//
// # Overview
//
// The package is layered the same way every call flows:
//
//   - client.go: Client.Do builds the request (Accept, Content-Type, API key,
//     request id), enforces the per-call timeout and classifies transport
//     failures.
//   - envelope.go: Interpret inspects the status and body of a fully read
//     response and decodes the optional {success, data} envelope.
//   - cars.go: ListCars, GetCar, CreateCar and DeleteCar on top of the two.
//   - validate.go: pure draft validation run before any create request.
//   - errors.go: the error taxonomy.
//   - types.go: Car, Draft and NewCar.
//
// # API Endpoints
//
//   - GET /api/cars: {success, data: Car[]} or a bare Car[]
//   - GET /api/cars/{id}: {success, data: Car}; 404 when absent
//   - POST /api/cars: {success, data: Car} or a bare Car; 400 on invalid input
//   - DELETE /api/cars/{id}: 2xx or 204; 404 is treated as success
//
// # Envelope Handling
//
// The backend is loosely specified. A body is decoded in one step into an
// Envelope whose Shape is Enveloped (a "success" field was present, or a bare
// array was wrapped) or Bare (the body is the payload). Callers must handle
// both shapes.
//
// # Error Handling
//
// Every failure is an *Error whose Kind is one of the Err* sentinels, so
// callers switch with errors.Is:
//
//	cars, err := client.ListCars(ctx)
//	switch {
//	case errors.Is(err, carapi.ErrTimeout):
//		// offer a retry
//	case errors.Is(err, carapi.ErrAuth):
//		// check the API key
//	}
//
// Transport failures are classified from structured errors first
// (context.DeadlineExceeded, *net.DNSError, ECONNREFUSED). Only when none
// match is the error text searched for hints such as "CORS" or "network".
// A cancelled parent context is returned unchanged as context.Canceled.
//
// No call is retried automatically.
//
// # Decoding Cars
//
// Cars received from the API are decoded field by field. A missing field or a
// field of the wrong JSON type leaves the zero value (nil for numbers) instead
// of failing the whole response; numeric strings are accepted for numbers and
// "imageUrl" is accepted for "image_url".
package carapi
