package service

import "github.com/silviacristinaa/tasks/pkg/models"

const (
	msgEndDateBeforeStartDate = "End date must be greater than start date"
	msgIncompleteDatePair     = "Date filters must be informed in pairs"
)

// validateDateOrder rejects a range whose end falls before its start.
func validateDateOrder(start, end models.Date) error {
	if end.Before(start) {
		return invalidInput(msgEndDateBeforeStartDate)
	}
	return nil
}

// validateFilterDatePair checks one optional filter range: both bounds must
// be supplied together, and a complete pair must also be properly ordered.
func validateFilterDatePair(from, to *models.Date) error {
	if (from == nil) != (to == nil) {
		return invalidInput(msgIncompleteDatePair)
	}
	if from != nil {
		return validateDateOrder(*from, *to)
	}
	return nil
}
