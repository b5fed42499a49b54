/*
Package api is the HTTP client for the product REST API.

# Endpoints

	GET    /api/products        -> []types.ShortProduct
	GET    /api/products/{id}   -> types.Product
	POST   /api/products        <- types.Product, response text returned as-is
	PUT    /api/products/{id}   <- types.Product, response text returned as-is
	DELETE /api/products/{id}   response body ignored

# Failures

Every operation makes exactly one round trip. There is no retry and no
client-side timeout unless Options.Timeout is set. A failure is one of:
  - *TransportError: connection refused, DNS, timeout, truncated body
  - *StatusError: the server answered outside 2xx
  - *DecodeError: the body did not match the expected JSON shape

# Observability

Each request carries a fresh X-Request-ID. Completed calls are logged through
slog and handed to the optional Recorder (see package history).
*/
package api
