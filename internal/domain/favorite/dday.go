package favorite

import (
	"fmt"
	"time"
)

// DDay renders the day count between today and the event start at date
// granularity: "D-n" for future events, "D+n" for past ones, "D-Day" on the
// day itself.
func DDay(eventStart, today time.Time) string {
	truncate := func(t time.Time) time.Time {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	days := int(truncate(eventStart).Sub(truncate(today)).Hours() / 24)
	switch {
	case days > 0:
		return fmt.Sprintf("D-%d", days)
	case days < 0:
		return fmt.Sprintf("D+%d", -days)
	default:
		return "D-Day"
	}
}
