package tools

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validArgs() map[string]interface{} {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	return map[string]interface{}{
		"customerName":  "Jane Doe",
		"customerEmail": "jane@example.com",
		"preferredDate": tomorrow,
		"preferredTime": "14:30",
		"serviceType":   "product_demo",
		"notes":         nil,
	}
}

func TestScheduleAppointmentSuccess(t *testing.T) {
	res, err := NewScheduleAppointment().Execute(validArgs())
	assert.NoError(t, err)
	assert.True(t, res.Success)

	payload, ok := res.Result.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "Appointment successfully scheduled for Jane Doe", payload["message"])

	appt := payload["appointment"].(map[string]interface{})
	assert.True(t, strings.HasPrefix(appt["appointmentId"].(string), "APT-"))
	assert.Len(t, appt["appointmentId"].(string), 12)
	assert.Equal(t, "jane@example.com", appt["customerEmail"])
	assert.Equal(t, "Product Demonstration", appt["serviceType"])
	assert.Equal(t, "None", appt["notes"])
	assert.Equal(t, "confirmed", appt["status"])
	assert.Equal(t, true, appt["confirmationSent"])

	steps := payload["nextSteps"].([]string)
	assert.Len(t, steps, 3)
	assert.Equal(t, "Confirmation email sent to jane@example.com", steps[0])
}

func TestScheduleAppointmentPastDate(t *testing.T) {
	args := validArgs()
	args["preferredDate"] = "2020-01-01"

	res, err := NewScheduleAppointment().Execute(args)
	assert.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Appointment date cannot be in the past", res.Error)
}

func TestScheduleAppointmentOutsideBusinessHours(t *testing.T) {
	args := validArgs()
	args["preferredTime"] = "08:00"

	res, err := NewScheduleAppointment().Execute(args)
	assert.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Time must be between 9:00 and 18:00", res.Error)

	args["preferredTime"] = "18:00"
	res, _ = NewScheduleAppointment().Execute(args)
	assert.False(t, res.Success)
}

func TestScheduleAppointmentInvalidServiceType(t *testing.T) {
	args := validArgs()
	args["serviceType"] = "haircut"

	res, err := NewScheduleAppointment().Execute(args)
	assert.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "Invalid service type. Must be one of:")
	assert.Contains(t, res.Error, "product_demo")
}

func TestScheduleAppointmentValidationPriority(t *testing.T) {
	// Everything invalid: the name check fires first.
	res, err := NewScheduleAppointment().Execute(map[string]interface{}{
		"customerName":  "x",
		"customerEmail": "not-an-email",
		"preferredDate": "nope",
		"preferredTime": "99:99",
		"serviceType":   "haircut",
	})
	assert.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Customer name is required and must be at least 2 characters", res.Error)
}

func TestScheduleAppointmentBadEmail(t *testing.T) {
	args := validArgs()
	args["customerEmail"] = "jane at example"

	res, _ := NewScheduleAppointment().Execute(args)
	assert.False(t, res.Success)
	assert.Equal(t, "A valid email address is required", res.Error)
}

func TestScheduleAppointmentKeepsNotes(t *testing.T) {
	args := validArgs()
	args["notes"] = "bring the old laptop"

	res, _ := NewScheduleAppointment().Execute(args)
	assert.True(t, res.Success)
	appt := res.Result.(map[string]interface{})["appointment"].(map[string]interface{})
	assert.Equal(t, "bring the old laptop", appt["notes"])
}
