package booking

import "errors"

var (
	// ErrNoHospital means the hospital step has not been completed.
	ErrNoHospital = errors.New("booking: no hospital selected")

	// ErrNoSlot means the date/time step has not been completed.
	ErrNoSlot = errors.New("booking: no slot selected")

	// ErrNoDetails means the patient details step has not been completed.
	ErrNoDetails = errors.New("booking: patient details missing")

	// ErrNotFound means no appointment matched the reference number.
	ErrNotFound = errors.New("booking: appointment not found")
)
