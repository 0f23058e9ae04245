package util

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// FormatDate formats a date string (YYYY-MM-DD) for display.
func FormatDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return "TBA"
	}
	t, err := time.Parse(isoDate, date)
	if err != nil {
		return date
	}
	return t.Format("Mon, Jan 02 2006")
}

// FormatDateRelative describes how far an event date is from now.
// "Today", "Tomorrow", "in 3d", "Jan 15", "Jan 15 '26", "Past"
func FormatDateRelative(date string, now time.Time) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return "TBA"
	}
	t, err := time.Parse(isoDate, date)
	if err != nil {
		return date
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(t.Sub(today).Hours() / 24)

	switch {
	case days < 0:
		return "Past"
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days < 7:
		return fmt.Sprintf("in %dd", days)
	case t.Year() == now.Year():
		return t.Format("Jan 02")
	default:
		return t.Format("Jan 02 '06")
	}
}

// FormatPrice returns the price label, or "Free" when none is set.
func FormatPrice(price string) string {
	price = strings.TrimSpace(price)
	if price == "" || strings.EqualFold(price, "free") || price == "$0" {
		return "Free"
	}
	return price
}

// Pluralize returns "1 event" / "3 events".
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// ParseEventDateInput parses flexible user input and normalizes to ISO (YYYY-MM-DD).
func ParseEventDateInput(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", errors.New("date is required")
	}

	layouts := []string{
		isoDate,
		"January 2, 2006",
		"Jan 2, 2006",
		"1/2/2006",
		"01/02/2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(isoDate), nil
		}
	}
	return "", fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
}

// ValidateEmail checks for a single bare address.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("invalid email %q", email)
	}
	return nil
}

// ValidateURL accepts empty input or an absolute http(s) URL.
func ValidateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid url %q", raw)
	}
	return nil
}

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
