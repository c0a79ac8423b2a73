package stats

import "time"

// Export dates arrive in whatever format the club's spreadsheet produced.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// shortDate renders a date as dd/mm/yy for axis labels and tables, falling
// back to the raw cell when it does not parse.
func shortDate(s string) string {
	if t, ok := parseDate(s); ok {
		return t.Format("02/01/06")
	}
	return s
}
