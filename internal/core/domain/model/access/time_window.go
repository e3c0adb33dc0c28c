package access

import (
	"fmt"
	"time"

	"printflow/internal/pkg/errs"
)

const (
	workingHoursStart = 8 * 3600
	workingHoursEnd   = 18 * 3600
)

// WindowKind names the flavor of a rule's time restriction.
type WindowKind int

const (
	// WindowUnknown represents an invalid or undefined kind.
	WindowUnknown WindowKind = iota

	// WindowNone means the rule applies around the clock.
	WindowNone

	// WindowWorkingHours restricts the rule to 08:00-18:00 inclusive.
	WindowWorkingHours

	// WindowCustom restricts the rule to an explicit [start, end] range.
	WindowCustom
)

func getWindowKindStrings() map[WindowKind]string {
	return map[WindowKind]string{
		WindowNone:         "none",
		WindowWorkingHours: "working_hours",
		WindowCustom:       "specific_hours",
	}
}

// WindowKindFromString parses the persisted representation of a window kind.
func WindowKindFromString(value string) (WindowKind, error) {
	for k, str := range getWindowKindStrings() {
		if str == value {
			return k, nil
		}
	}
	return WindowUnknown, errs.NewValueIsInvalidErrorWithCause(
		"windowKind is invalid",
		fmt.Errorf("%q is not a valid time restriction", value),
	)
}

// Validate checks that the WindowKind is one of the defined values.
func (k WindowKind) Validate() error {
	if _, ok := getWindowKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"windowKind is invalid",
			fmt.Errorf("%d is not a valid time restriction", k),
		)
	}
	return nil
}

// String returns the persisted representation of the window kind.
func (k WindowKind) String() string {
	if str, ok := getWindowKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}

// ClockTime is a time of day with minute precision, used for the bounds
// of custom time windows.
type ClockTime struct {
	hour   int
	minute int
}

// NewClockTime creates a ClockTime with validation.
func NewClockTime(hour, minute int) (ClockTime, error) {
	if hour < 0 || hour > 23 {
		return ClockTime{}, errs.NewValueIsOutOfRangeError("hour", hour, 0, 23)
	}
	if minute < 0 || minute > 59 {
		return ClockTime{}, errs.NewValueIsOutOfRangeError("minute", minute, 0, 59)
	}
	return ClockTime{hour: hour, minute: minute}, nil
}

// ClockTimeFromString parses "HH:MM".
func ClockTimeFromString(value string) (ClockTime, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return ClockTime{}, errs.NewValueIsInvalidErrorWithCause("clockTime is invalid", err)
	}
	return ClockTime{hour: parsed.Hour(), minute: parsed.Minute()}, nil
}

// String returns the "HH:MM" representation.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.hour, c.minute)
}

func (c ClockTime) secondsOfDay() int {
	return c.hour*3600 + c.minute*60
}

// TimeWindow is a rule's time-of-day restriction. The zero value is
// invalid; use one of the constructors.
type TimeWindow struct {
	kind  WindowKind
	start *ClockTime
	end   *ClockTime
}

// NewUnrestrictedWindow creates a window that always passes.
func NewUnrestrictedWindow() TimeWindow {
	return TimeWindow{kind: WindowNone}
}

// NewWorkingHoursWindow creates the fixed 08:00-18:00 window.
func NewWorkingHoursWindow() TimeWindow {
	return TimeWindow{kind: WindowWorkingHours}
}

// NewCustomWindow creates an explicit [start, end] window. Either bound
// may be nil; a custom window with a missing bound passes every check.
func NewCustomWindow(start, end *ClockTime) TimeWindow {
	return TimeWindow{kind: WindowCustom, start: start, end: end}
}

// RestoreTimeWindow rebuilds a window from its persisted parts.
func RestoreTimeWindow(kind WindowKind, start, end *ClockTime) (TimeWindow, error) {
	if err := kind.Validate(); err != nil {
		return TimeWindow{}, err
	}
	if kind != WindowCustom {
		start, end = nil, nil
	}
	return TimeWindow{kind: kind, start: start, end: end}, nil
}

// Kind returns the flavor of the window.
func (w TimeWindow) Kind() WindowKind {
	return w.kind
}

// Start returns the custom lower bound, or nil.
func (w TimeWindow) Start() *ClockTime {
	return w.start
}

// End returns the custom upper bound, or nil.
func (w TimeWindow) End() *ClockTime {
	return w.end
}

// Validate checks that the window was built through a constructor.
func (w TimeWindow) Validate() error {
	return w.kind.Validate()
}

// Allows reports whether the given instant falls inside the window.
// Both bounds are inclusive. The server's local clock is used as-is;
// no timezone normalization happens.
func (w TimeWindow) Allows(now time.Time) bool {
	nowSec := now.Hour()*3600 + now.Minute()*60 + now.Second()

	switch w.kind {
	case WindowWorkingHours:
		return nowSec >= workingHoursStart && nowSec <= workingHoursEnd
	case WindowCustom:
		if w.start == nil || w.end == nil {
			return true
		}
		return nowSec >= w.start.secondsOfDay() && nowSec <= w.end.secondsOfDay()
	default:
		return true
	}
}

// String describes the window for check trails and admin listings.
func (w TimeWindow) String() string {
	switch w.kind {
	case WindowWorkingHours:
		return "working_hours 08:00-18:00"
	case WindowCustom:
		if w.start == nil || w.end == nil {
			return "specific_hours (unbounded)"
		}
		return fmt.Sprintf("specific_hours %s-%s", w.start, w.end)
	default:
		return "none"
	}
}
