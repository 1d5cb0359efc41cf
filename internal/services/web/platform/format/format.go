// Package format renders money and dates the way the shop reads them.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Rupiah formats amount with Indonesian digit grouping, e.g. "Rp 1.500.000".
func Rupiah(amount int64) string {
	if amount < 0 {
		return "-Rp " + printer.Sprintf("%d", uint64(-(amount+1))+1)
	}
	return "Rp " + printer.Sprintf("%d", amount)
}

// Number formats n with Indonesian digit grouping.
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// Rating renders a mean customer rating with one decimal, e.g. "4,5", or "-"
// when nobody rated.
func Rating(mean *float64) string {
	if mean == nil || *mean == 0 {
		return "-"
	}
	return printer.Sprintf("%.1f", *mean)
}

// ParseRupiah reads an amount typed by staff. It accepts an optional "Rp"
// prefix and "." group separators; fractions are rejected.
func ParseRupiah(input string) (int64, error) {
	value := strings.TrimSpace(input)
	value = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(value, "Rp"), "rp"))
	value = strings.ReplaceAll(value, ".", "")
	value = strings.ReplaceAll(value, " ", "")
	if value == "" {
		return 0, fmt.Errorf("amount is required")
	}
	if strings.Contains(value, ",") {
		return 0, fmt.Errorf("amount %q must be whole rupiah", input)
	}
	amount, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q is not a number", input)
	}
	if amount < 0 {
		return 0, fmt.Errorf("amount must not be negative")
	}
	return amount, nil
}

// MonthName returns the Indonesian name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// Date renders t as "5 Maret 2026".
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d %s %d", t.Day(), MonthName(t.Month()), t.Year())
}

// DateTime renders t as "5 Maret 2026 09.30".
func DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %02d.%02d", Date(t), t.Hour(), t.Minute())
}

// MonthYear renders t as "Maret 2026".
func MonthYear(t time.Time) string {
	return fmt.Sprintf("%s %d", MonthName(t.Month()), t.Year())
}

// MonthKey renders t as the "2006-01" form used in query strings.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// ParseMonth reads "YYYY-MM" in loc. An empty value selects the month of now.
// It returns the first instant of the month and of the following month.
func ParseMonth(value string, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	value = strings.TrimSpace(value)
	var start time.Time
	if value == "" {
		local := now.In(loc)
		start = time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	} else {
		parsed, err := time.ParseInLocation("2006-01", value, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("month %q must look like 2006-01", value)
		}
		start = parsed
	}
	return start, start.AddDate(0, 1, 0), nil
}

// ParseDate reads an HTML date input ("2006-01-02") in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must look like 2006-01-02", value)
	}
	return t, nil
}
