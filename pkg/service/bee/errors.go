package bee

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for upstream API failures
var (
	ErrUnexpectedStatus = goerr.New("unexpected status from upstream API")
	ErrInvalidResponse  = goerr.New("invalid response from upstream API")
)
