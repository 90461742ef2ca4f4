// Package mockapi is an in-memory implementation of the cars REST API that
// carview consumes.
//
// Routes live under /api:
//
//	GET    /api/cars      list, oldest first
//	GET    /api/cars/:id  one car, 404 when absent
//	POST   /api/cars      create, 201; 400 with details when invalid
//	DELETE /api/cars/:id  delete, 404 when absent
//
// Responses are {"success":true,"data":...} envelopes, or bare arrays and
// objects when Options.Bare is set. Failures are always
// {"success":false,"error":"...","details":[...]}. When Options.APIKey is set
// every /api request must carry it in Options.APIKeyHeader, otherwise the
// answer is 401. Options.Delay holds each response back, which is handy for
// watching the client time out.
package mockapi
