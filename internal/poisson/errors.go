package poisson

import "errors"

// ErrInvalidArgument is returned when an estimator receives an input outside
// its valid domain. Callers can match it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")
