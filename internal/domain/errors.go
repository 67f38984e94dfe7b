package domain

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")

	// Sleep and time-bucket computation errors.
	ErrMalformedPhaseSequence = errors.New("phase sequence length does not match session span")
	ErrEmptySessionGroup      = errors.New("empty sleep session group")
	ErrInvertedInterval       = errors.New("interval end is not after start")
	ErrFullyAwakeSession      = errors.New("phase sequence contains no sleep")
	ErrInvalidDateRange       = errors.New("end date is before start date")

	// ErrInvalidRecord marks a provider or spreadsheet record that failed boundary validation.
	ErrInvalidRecord = errors.New("invalid source record")

	ErrUnsupportedIntegration = errors.New("unsupported integration type")
)
