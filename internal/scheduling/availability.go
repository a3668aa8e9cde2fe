package scheduling

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/pkg/types"
)

// AvailabilityIndex holds per-instructor, per-weekday ordered working start times.
// Slot i covers [slot[i], slot[i+1]); the last slot is open-ended.
type AvailabilityIndex struct {
	loc   *time.Location
	slots map[int64]map[time.Weekday][]types.TimeString
}

// BuildAvailabilityIndex normalizes raw entries. Malformed tokens and unknown
// weekdays are dropped with a warning so corrupt rows do not block the instructor.
func BuildAvailabilityIndex(entries []domain.AvailabilityEntry, loc *time.Location, logger Logger) *AvailabilityIndex {
	if loc == nil {
		loc = time.UTC
	}

	idx := &AvailabilityIndex{
		loc:   loc,
		slots: make(map[int64]map[time.Weekday][]types.TimeString),
	}

	for _, entry := range entries {
		day, err := domain.ParseWeekday(string(entry.Day))
		if err != nil {
			logger.Warn("BuildAvailabilityIndex: instructor_id=%d skip entry: %v", entry.InstructorID, err)
			continue
		}

		byDay, ok := idx.slots[entry.InstructorID]
		if !ok {
			byDay = make(map[time.Weekday][]types.TimeString)
			idx.slots[entry.InstructorID] = byDay
		}

		for _, raw := range entry.Hours {
			ts, err := types.NewTimeStringFromString(raw)
			if err != nil {
				logger.Warn("BuildAvailabilityIndex: instructor_id=%d day=%s skip malformed hour %q",
					entry.InstructorID, day, raw)
				continue
			}
			byDay[day.Time()] = append(byDay[day.Time()], ts)
		}
	}

	for _, byDay := range idx.slots {
		for wd, list := range byDay {
			slices.SortFunc(list, func(a, b types.TimeString) int { return a.Minutes() - b.Minutes() })
			byDay[wd] = slices.Compact(list)
		}
	}

	return idx
}

// Location returns the business time zone of the index
func (i *AvailabilityIndex) Location() *time.Location {
	return i.loc
}

// Slots returns the ordered working start times of the instructor on a weekday
func (i *AvailabilityIndex) Slots(instructorID int64, wd time.Weekday) []types.TimeString {
	return i.slots[instructorID][wd]
}

// Check validates that the instant falls inside a working interval of the
// instructor, on the weekday it has in the business time zone
func (i *AvailabilityIndex) Check(instructorID int64, at time.Time) error {
	local := at.In(i.loc)
	return i.check(instructorID, local.Weekday(), types.NewTimeString(local))
}

// CheckTimeOfDay validates a caller-supplied "HH:MM" on a weekday.
// A malformed token is a hard invalidTimeFormat violation.
func (i *AvailabilityIndex) CheckTimeOfDay(instructorID int64, day domain.Weekday, hhmm string) error {
	ts, err := types.NewTimeStringFromString(hhmm)
	if err != nil {
		return violation(FieldScheduledTime, CodeInvalidTimeFormat, "time %q must be HH:MM", hhmm)
	}
	parsedDay, err := domain.ParseWeekday(string(day))
	if err != nil {
		return violation(FieldScheduledTime, CodeInvalidWeekday, "unknown weekday %q", day)
	}
	return i.check(instructorID, parsedDay.Time(), ts)
}

func (i *AvailabilityIndex) check(instructorID int64, wd time.Weekday, at types.TimeString) error {
	slots := i.Slots(instructorID, wd)
	if len(slots) == 0 {
		return violation(FieldScheduledTime, CodeInstructorNotWorking,
			"instructor does not work on %s", domain.WeekdayOf(wd))
	}

	minute := at.Minutes()
	for idx, slot := range slots {
		last := idx == len(slots)-1
		if minute >= slot.Minutes() && (last || minute < slots[idx+1].Minutes()) {
			return nil
		}
	}

	hours := make([]string, len(slots))
	for idx, s := range slots {
		hours[idx] = s.String()
	}
	return violation(FieldScheduledTime, CodeOutsideAvailability,
		"%s is outside working hours on %s: %s", at, domain.WeekdayOf(wd), strings.Join(hours, ", "))
}

func (i *AvailabilityIndex) String() string {
	return fmt.Sprintf("AvailabilityIndex{instructors=%d, tz=%s}", len(i.slots), i.loc)
}
