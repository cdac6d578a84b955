package draft

import (
	"errors"
	"maps"
	"strings"
	"time"

	"booking-checkout/internal/pkg/ptr"
)

var ErrInvalidSchedule = errors.New("invalid scheduled date or time")

// Draft is the in-progress booking a client is assembling. Its JSON form is what the
// draft store persists, so field names are part of the storage format.
type Draft struct {
	ServiceID         string            `json:"serviceId"`
	ProviderID        string            `json:"providerId"`
	ScheduledDate     string            `json:"scheduledDate"`
	ScheduledTime     string            `json:"scheduledTime"`
	Location          string            `json:"location"`
	CustomInputValues map[string]string `json:"customInputValues"`
	Notes             string            `json:"notes"`
	// Price is kept for older stored drafts; quotes never read it.
	Price          *int64 `json:"price,omitempty"`
	StepIndex      int    `json:"stepIndex"`
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

func New() *Draft {
	return &Draft{CustomInputValues: map[string]string{}}
}

func (d *Draft) Step() Step {
	return StepAt(d.StepIndex)
}

func (d *Draft) SetStep(s Step) {
	d.StepIndex = StepAt(int(s)).Index()
}

// Normalize restores invariants on a draft decoded from storage.
func (d *Draft) Normalize() {
	d.StepIndex = StepAt(d.StepIndex).Index()
	if d.CustomInputValues == nil {
		d.CustomInputValues = map[string]string{}
	}
}

func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	c := *d
	c.Price = ptr.Clone(d.Price)
	if d.CustomInputValues != nil {
		c.CustomInputValues = maps.Clone(d.CustomInputValues)
	}
	return &c
}

func (d *Draft) HasCustomValues() bool {
	for _, v := range d.CustomInputValues {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// EnsureIdempotencyKey assigns a key the first time the draft is mutated.
func (d *Draft) EnsureIdempotencyKey(generate func() string) {
	if d.IdempotencyKey == "" && generate != nil {
		d.IdempotencyKey = generate()
	}
}

var scheduleLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 3:04 PM",
}

// ScheduledAt combines the separate date and wall-clock fields into one instant in loc.
func (d *Draft) ScheduledAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	value := strings.TrimSpace(d.ScheduledDate) + " " + strings.TrimSpace(d.ScheduledTime)
	for _, layout := range scheduleLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidSchedule
}

// Patch carries optional field updates; nil fields are left untouched and
// CustomInputValues entries are merged key by key.
type Patch struct {
	ServiceID         *string
	ProviderID        *string
	ScheduledDate     *string
	ScheduledTime     *string
	Location          *string
	Notes             *string
	CustomInputValues map[string]string
}

func (p Patch) IsEmpty() bool {
	return p.ServiceID == nil && p.ProviderID == nil && p.ScheduledDate == nil &&
		p.ScheduledTime == nil && p.Location == nil && p.Notes == nil && len(p.CustomInputValues) == 0
}
