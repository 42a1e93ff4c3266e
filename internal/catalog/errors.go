package catalog

import "errors"

var (
	// ErrTreatmentNotFound is returned when a treatment id is unknown
	ErrTreatmentNotFound = errors.New("treatment not found")

	// ErrEmployeeNotFound is returned when an employee id is unknown
	ErrEmployeeNotFound = errors.New("employee not found")
)
