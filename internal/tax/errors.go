package tax

import "errors"

// Typed errors raised by the engine internals. The service façade absorbs
// them into the fail-open zero-tax result; they surface only in unit tests.
var (
	ErrNegativeAmount = errors.New("tax: base amount must not be negative")
)
