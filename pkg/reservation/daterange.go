package reservation

import (
	"strings"
	"time"

	"github.com/musec/clowder/internal/errdef"
)

// DateRangeLayout is the layout of each half of a human-entered date range,
// e.g. "14:30+01:00 2 Jan 2026".
const DateRangeLayout = "15:04-07:00 2 Jan 2006"

const dateRangeSeparator = " - "

// ParseDateRange splits a date-range string of the form "<start> - <end>" and
// parses both timestamps. Anything other than exactly two components, or a
// component that does not parse, is a bad request; nothing is persisted on
// failure.
func ParseDateRange(dates string) (start, end time.Time, err error) {
	parts := strings.Split(dates, dateRangeSeparator)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, errdef.NewBadRequest("expected two dates, not %q", dates)
	}

	start, err = time.Parse(DateRangeLayout, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, errdef.NewBadRequest("failed to parse start of date range: %v", err)
	}

	end, err = time.Parse(DateRangeLayout, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, errdef.NewBadRequest("failed to parse end of date range: %v", err)
	}

	return start.UTC(), end.UTC(), nil
}
