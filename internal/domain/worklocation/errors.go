package worklocation

import "errors"

var (
	ErrWorkLocationNotFound = errors.New("work location not found")

	// Geofence validation errors. The two cases carry distinct machine
	// codes so clients can render different guidance.
	ErrOutsideRadius  = errors.New("location is outside the allowed radius")
	ErrAccuracyTooLow = errors.New("GPS accuracy is insufficient")
)
