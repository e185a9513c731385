package pkg

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized        = errors.New("operator is not authorized")
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("not found")
	ErrConfiguration       = errors.New("server is misconfigured")
	ErrUpstreamUnreachable = errors.New("telegram is unreachable")
	ErrUpstreamProtocol    = errors.New("unexpected telegram response")
	ErrDelivery            = errors.New("telegram rejected message delivery")
)

type ErrDBProcedure struct {
	Cause string
	Info  string
	Err   error
}

func (e ErrDBProcedure) Error() string {
	return fmt.Sprintf("%s; got error: %s; info: %s", e.Cause, e.Err, e.Info)
}

func (e ErrDBProcedure) Unwrap() error {
	return e.Err
}
