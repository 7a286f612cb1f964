package tools

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	emailRE   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	dateRE    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	time24hRE = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
)

func validateEmail(email string) error {
	if email == "" || !emailRE.MatchString(email) {
		return fmt.Errorf("A valid email address is required")
	}
	return nil
}

func validateDateFormat(date string) error {
	if date == "" || !dateRE.MatchString(date) {
		return fmt.Errorf("Date must be in YYYY-MM-DD format")
	}
	return nil
}

func validateFutureDate(date string) error {
	if err := validateDateFormat(date); err != nil {
		return err
	}
	d, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return fmt.Errorf("Date must be in YYYY-MM-DD format")
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if d.Before(today) {
		return fmt.Errorf("Date cannot be in the past")
	}
	return nil
}

func validateTimeFormat(t string) error {
	if t == "" || !time24hRE.MatchString(t) {
		return fmt.Errorf("Time must be in HH:MM format (24-hour)")
	}
	return nil
}

func validateBusinessHours(t string, startHour, endHour int) error {
	if err := validateTimeFormat(t); err != nil {
		return err
	}
	hours, _ := strconv.Atoi(strings.SplitN(t, ":", 2)[0])
	if hours < startHour || hours >= endHour {
		return fmt.Errorf("Time must be between %d:00 and %d:00", startHour, endHour)
	}
	return nil
}

func validateMinLength(value string, minLength int, fieldName string) error {
	if len(strings.TrimSpace(value)) < minLength {
		return fmt.Errorf("%s is required and must be at least %d characters", fieldName, minLength)
	}
	return nil
}

func validateEnum(value string, allowed []string, fieldName string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("Invalid %s. Must be one of: %s", fieldName, strings.Join(allowed, ", "))
}
