package draft

import (
	"fmt"
	"strings"
)

// Step is one position of the linear booking wizard. The zero value is StepService.
type Step int

const (
	StepService Step = iota
	StepSchedule
	StepLocation
	StepCustom
	StepNotes
	StepReview
)

const (
	FirstStep = StepService
	LastStep  = StepReview
)

var stepNames = [...]string{
	StepService:  "service",
	StepSchedule: "schedule",
	StepLocation: "location",
	StepCustom:   "custom",
	StepNotes:    "notes",
	StepReview:   "review",
}

// Steps returns the wizard sequence in order.
func Steps() []Step {
	return []Step{StepService, StepSchedule, StepLocation, StepCustom, StepNotes, StepReview}
}

func (s Step) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepNames[s]
}

func (s Step) IsValid() bool {
	return s >= FirstStep && s <= LastStep
}

func (s Step) Index() int {
	return int(s)
}

// Next is clamped at LastStep.
func (s Step) Next() Step {
	if s >= LastStep {
		return LastStep
	}
	return s + 1
}

// Prev is clamped at FirstStep.
func (s Step) Prev() Step {
	if s <= FirstStep {
		return FirstStep
	}
	return s - 1
}

// StepAt maps a persisted stepIndex onto the sequence, clamping out-of-range values.
func StepAt(index int) Step {
	switch {
	case index < int(FirstStep):
		return FirstStep
	case index > int(LastStep):
		return LastStep
	default:
		return Step(index)
	}
}

func ParseStep(name string) (Step, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range stepNames {
		if n == name {
			return Step(i), nil
		}
	}
	return FirstStep, fmt.Errorf("unknown step %q", name)
}
