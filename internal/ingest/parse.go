package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"sales-service/internal/query"
)

var (
	moneyStrip  = regexp.MustCompile(`[^\d.,-]`)
	numberStrip = regexp.MustCompile(`[^\d.-]`)
	dayFirst    = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})$`)
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseMoney reads amounts such as "₹1,234.50". Currency symbols and
// thousands separators are dropped.
func ParseMoney(s string) *float64 {
	cleaned := moneyStrip.ReplaceAllString(strings.TrimSpace(s), "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	return parseFloat(cleaned)
}

// ParseNumber reads a plain number, ignoring unit suffixes and symbols
func ParseNumber(s string) *float64 {
	return parseFloat(numberStrip.ReplaceAllString(strings.TrimSpace(s), ""))
}

// ParseInt reads a number and rounds it to the nearest integer
func ParseInt(s string) *int {
	f := ParseNumber(s)
	if f == nil {
		return nil
	}
	n := int(math.Round(*f))
	return &n
}

// ParseDate accepts ISO dates and timestamps, a few written forms and
// day-first dd/mm/yyyy or dd-mm-yy. Two digit years above 50 are 19xx.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := query.CalendarDate(t)
			return &d
		}
	}

	m := dayFirst.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if len(m[3]) <= 2 {
		if year > 50 {
			year += 1900
		} else {
			year += 2000
		}
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day {
		return nil
	}
	return &d
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
