package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/b-sukumar/salondost-dashboard/models"
)

// ReminderComposer builds the outbound WhatsApp deep link for an appointment
// reminder. Sending is fire-and-forget on the client side; nothing here
// confirms delivery.
type ReminderComposer struct {
	SalonName string
}

func NewReminderComposer(salonName string) *ReminderComposer {
	return &ReminderComposer{SalonName: salonName}
}

func (r *ReminderComposer) Compose(booking models.Booking, serviceName string) models.ReminderResponse {
	message := fmt.Sprintf("Hi %s, this is a reminder for your %s at %s today at %s. See you soon!",
		booking.ClientName, serviceName, r.SalonName, booking.BookingTime)

	// QueryEscape uses + for spaces; wa.me expects percent encoding
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")

	return models.ReminderResponse{
		Phone:       booking.ClientPhone,
		Message:     message,
		WhatsAppURL: "https://wa.me/" + booking.ClientPhone + "?text=" + encoded,
	}
}

// CallLink is the tel: deep link for a stored phone number.
func CallLink(phone string) string {
	return "tel:" + phone
}
