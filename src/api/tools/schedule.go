package tools

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service types bookable through the scheduling tool.
var serviceTypes = []string{
	"product_demo",
	"technical_support",
	"purchase_consultation",
	"device_setup",
	"repair_assessment",
}

var serviceTypeLabels = map[string]string{
	"product_demo":          "Product Demonstration",
	"technical_support":     "Technical Support Session",
	"purchase_consultation": "Purchase Consultation",
	"device_setup":          "Device Setup Assistance",
	"repair_assessment":     "Repair Assessment",
}

const (
	businessHoursStart = 9
	businessHoursEnd   = 18
)

// ScheduleAppointment simulates booking an in-store appointment. No real
// calendar or email is touched; the confirmation payload is synthesized.
type ScheduleAppointment struct{}

func NewScheduleAppointment() ScheduleAppointment { return ScheduleAppointment{} }

func (ScheduleAppointment) Definition() Definition {
	return Definition{
		Name: "schedule_appointment",
		Description: "Schedule a customer appointment for store services. Use this when a customer " +
			"wants to book a consultation, product demo, technical support session, or any in-store " +
			"service. The appointment will be confirmed and a confirmation email will be sent to the customer.",
		Properties: map[string]Parameter{
			"customerName": {
				Type:        "string",
				Description: "Full name of the customer booking the appointment",
			},
			"customerEmail": {
				Type:        "string",
				Description: "Email address for sending appointment confirmation",
			},
			"preferredDate": {
				Type:        "string",
				Description: "Preferred date for the appointment in YYYY-MM-DD format",
			},
			"preferredTime": {
				Type:        "string",
				Description: "Preferred time for the appointment in HH:MM format (24-hour)",
			},
			"serviceType": {
				Type:        "string",
				Description: "Type of service or consultation requested",
				Enum:        serviceTypes,
			},
			"notes": {
				Type:        []string{"string", "null"},
				Description: "Additional notes or special requests from the customer",
			},
		},
		Required: []string{"customerName", "customerEmail", "preferredDate", "preferredTime", "serviceType", "notes"},
		Order:    []string{"customerName", "customerEmail", "preferredDate", "preferredTime", "serviceType", "notes"},
	}
}

func (t ScheduleAppointment) Execute(args map[string]interface{}) (Result, error) {
	name := argString(args, "customerName")
	email := argString(args, "customerEmail")
	date := argString(args, "preferredDate")
	timeOfDay := argString(args, "preferredTime")
	serviceType := argString(args, "serviceType")
	notes := argString(args, "notes")

	if err := t.validate(name, email, date, timeOfDay, serviceType); err != nil {
		return Result{Success: false, Error: err.Error()}, nil
	}

	if notes == "" {
		notes = "None"
	}

	appointment := map[string]interface{}{
		"appointmentId":     "APT-" + strings.ToUpper(uuid.NewString()[:8]),
		"customerName":      name,
		"customerEmail":     email,
		"scheduledDateTime": fmt.Sprintf("%s %s", date, timeOfDay),
		"serviceType":       serviceTypeLabels[serviceType],
		"notes":             notes,
		"status":            "confirmed",
		"confirmationSent":  true,
	}

	return Result{
		Success: true,
		Result: map[string]interface{}{
			"message":     fmt.Sprintf("Appointment successfully scheduled for %s", name),
			"appointment": appointment,
			"nextSteps": []string{
				fmt.Sprintf("Confirmation email sent to %s", email),
				"Customer will receive a reminder 24 hours before the appointment",
				"Appointment can be modified or cancelled up to 2 hours in advance",
			},
		},
	}, nil
}

// validate runs field checks in fixed priority order; only the first
// failure is surfaced.
func (ScheduleAppointment) validate(name, email, date, timeOfDay, serviceType string) error {
	if err := validateMinLength(name, 2, "Customer name"); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validateFutureDate(date); err != nil {
		return fmt.Errorf("Appointment %s", strings.ToLower(err.Error()))
	}
	if err := validateBusinessHours(timeOfDay, businessHoursStart, businessHoursEnd); err != nil {
		return err
	}
	if err := validateEnum(serviceType, serviceTypes, "service type"); err != nil {
		return err
	}
	return nil
}

func argString(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}
