package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// WhatsAppLink builds a wa.me deep link for an Egyptian phone number with a
// prefilled message. Local numbers (01x...) get the +20 country code.
func WhatsAppLink(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if strings.HasPrefix(digits, "0") {
		digits = "20" + digits[1:]
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(message))
}

// OrderWhatsAppMessage is the confirmation text sent to the business after a
// booking.
func OrderWhatsAppMessage(orderID, serviceName, date, timeSlot string, total float64) string {
	return fmt.Sprintf("Order %s\nService: %s\nDate: %s %s\nTotal: %s",
		orderID, serviceName, date, timeSlot, FormatPrice(total))
}
