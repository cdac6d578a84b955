package request

import (
	"maps"

	"booking-checkout/internal/domain/draft"
)

// PatchDraftRequest updates only the fields present in the body. An empty string clears
// a field; an empty custom value removes that entry.
type PatchDraftRequest struct {
	ServiceID         *string           `json:"serviceId" binding:"omitempty,max=128"`
	ProviderID        *string           `json:"providerId" binding:"omitempty,max=128"`
	ScheduledDate     *string           `json:"scheduledDate" binding:"omitempty,max=32"`
	ScheduledTime     *string           `json:"scheduledTime" binding:"omitempty,max=32"`
	Location          *string           `json:"location" binding:"omitempty,max=500"`
	Notes             *string           `json:"notes" binding:"omitempty,max=2000"`
	CustomInputValues map[string]string `json:"customInputValues" binding:"omitempty,max=50,dive,keys,max=128,endkeys,max=1000"`
}

func (r *PatchDraftRequest) ToDomain() draft.Patch {
	p := draft.Patch{
		ServiceID:     r.ServiceID,
		ProviderID:    r.ProviderID,
		ScheduledDate: r.ScheduledDate,
		ScheduledTime: r.ScheduledTime,
		Location:      r.Location,
		Notes:         r.Notes,
	}
	if len(r.CustomInputValues) > 0 {
		p.CustomInputValues = maps.Clone(r.CustomInputValues)
	}
	return p
}

type ApplyPromoRequest struct {
	Code string `json:"code" binding:"max=64"`
}
