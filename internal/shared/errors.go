package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Gateway errors
	ErrGatewayRequest     = fmt.Errorf("gateway request failed")
	ErrMalformedResponse  = fmt.Errorf("malformed gateway response")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Catalog errors
	ErrSongNotFound   = fmt.Errorf("song not found")
	ErrEmptyCatalog   = fmt.Errorf("empty song catalog")
	ErrInvalidCatalog = fmt.Errorf("invalid song catalog")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
