package resolve

import (
	"fmt"
	"time"

	"github.com/Heemps/Cape-Cod-Tides/internal/models"
)

// slotDateLayout is the ISO form the platform's date slot delivers.
const slotDateLayout = "2006-01-02"

// UnparseableDateError means the user supplied a date we could not read.
// Distinct from a missing slot: the user tried and failed, so the re-prompt
// must say so.
type UnparseableDateError struct {
	Raw string
}

func (e *UnparseableDateError) Error() string {
	return fmt.Sprintf("unparseable date %q", e.Raw)
}

// Date resolves an optional date slot.
//
// No value means today: NOAA's named "today" marker selects the current
// 24-hour window at the station, so no clock access is needed here. An
// explicit value must be an ISO calendar date and becomes a begin-date plus
// 24-hour range with zero-padded month and day.
func Date(slot *string) (models.ResolvedDate, error) {
	if slot == nil {
		return models.ResolvedDate{
			DisplayText: "Today",
			QueryParam:  "date=today",
		}, nil
	}

	day, err := time.Parse(slotDateLayout, *slot)
	if err != nil {
		return models.ResolvedDate{}, &UnparseableDateError{Raw: *slot}
	}

	return models.ResolvedDate{
		DisplayText: fmt.Sprintf("%s %s %s", day.Weekday(), day.Month(), ordinal(day.Day())),
		QueryParam:  fmt.Sprintf("begin_date=%s&range=24", day.Format("20060102")),
	}, nil
}

func ordinal(day int) string {
	suffix := "th"
	switch {
	case day%100 >= 11 && day%100 <= 13:
		// 11th, 12th, 13th
	case day%10 == 1:
		suffix = "st"
	case day%10 == 2:
		suffix = "nd"
	case day%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", day, suffix)
}
