package draft

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"booking-checkout/internal/domain/catalog"
)

var ErrValidation = errors.New("draft validation failed")

const (
	FieldServiceID     = "serviceId"
	FieldProviderID    = "providerId"
	FieldScheduledDate = "scheduledDate"
	FieldScheduledTime = "scheduledTime"
	FieldLocation      = "location"
	customFieldPrefix  = "customInputValues."
)

// CustomFieldKey is the error key used for a service-declared custom field.
func CustomFieldKey(id string) string {
	return customFieldPrefix + id
}

// FieldErrors maps a draft field to a user-facing message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e[k]))
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e FieldErrors) Is(target error) bool {
	return target == ErrValidation
}

func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateStep returns nil when step's required fields are filled. customFields are the
// fields declared by the selected service.
func ValidateStep(d *Draft, step Step, customFields []catalog.CustomField) FieldErrors {
	errs := FieldErrors{}

	switch step {
	case StepService:
		if blank(d.ServiceID) {
			errs[FieldServiceID] = "Please select a service"
		}
		if blank(d.ProviderID) {
			errs[FieldProviderID] = "Please select a provider"
		}
	case StepSchedule:
		if blank(d.ScheduledDate) {
			errs[FieldScheduledDate] = "Please select a date"
		}
		if blank(d.ScheduledTime) {
			errs[FieldScheduledTime] = "Please select a time"
		}
	case StepLocation:
		if blank(d.Location) {
			errs[FieldLocation] = "Please enter a location"
		}
	case StepCustom:
		for _, f := range customFields {
			if f.Required && blank(d.CustomInputValues[f.ID]) {
				errs[CustomFieldKey(f.ID)] = fmt.Sprintf("%s is required", f.DisplayName())
			}
		}
	case StepNotes, StepReview:
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateThrough checks every step up to and including last.
func ValidateThrough(d *Draft, last Step, customFields []catalog.CustomField) FieldErrors {
	all := FieldErrors{}
	for _, s := range Steps() {
		if s > last {
			break
		}
		for k, v := range ValidateStep(d, s, customFields) {
			all[k] = v
		}
	}
	if len(all) == 0 {
		return nil
	}
	return all
}
