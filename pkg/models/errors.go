package models

import "errors"

var (
	// ErrInvalidArgument covers unknown symbols, nil trades and non-positive prices.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrArithmetic is returned when a ratio has a zero denominator.
	ErrArithmetic = errors.New("arithmetic error")
	// ErrIllegalState means a store index entry has no backing partition.
	ErrIllegalState = errors.New("illegal state")
)
