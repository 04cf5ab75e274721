package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/glowdesk/booking-bot/internal/model"
	"github.com/glowdesk/booking-bot/pkg/timeslot"
)

// Reply rendering. All formatting of slots and dates for the customer
// happens here; everything upstream works with canonical values.

const dateDisplay = "Monday, January 2"
const dateDisplayFull = "Monday, January 2, 2006"

func serviceLines(services []model.Service) string {
	lines := make([]string, 0, len(services))
	for i, s := range services {
		lines = append(lines, fmt.Sprintf("%d. %s (💰$%.2f, ⏱️%d mins)", i+1, s.Name, s.Price, s.Duration))
	}
	return strings.Join(lines, "\n")
}

func staffLines(staff []model.StaffMember) string {
	lines := make([]string, 0, len(staff))
	for i, m := range staff {
		lines = append(lines, fmt.Sprintf("%d. ✂️ %s", i+1, m.Name))
	}
	return strings.Join(lines, "\n")
}

func slotLines(slots []timeslot.Minutes) string {
	lines := make([]string, 0, len(slots))
	for i, s := range slots {
		lines = append(lines, fmt.Sprintf("%d. ⏰ %s", i+1, s.Format()))
	}
	return strings.Join(lines, "\n")
}

func replyWelcome(salonName string, services []model.Service) string {
	return fmt.Sprintf(
		"👋 Welcome to %s! ✨\n\nHere are our services:\n\n%s\n\n📝 Please enter the number of the service you'd like to book.",
		salonName, serviceLines(services),
	)
}

func replyNoServices(salonName string) string {
	return fmt.Sprintf(
		"👋 Welcome to %s! ✨\n\n😔 Sorry, no services are currently available. Please contact us directly.",
		salonName,
	)
}

func replyInvalidService(services []model.Service) string {
	return fmt.Sprintf("❌ Invalid service number. Please choose from:\n\n%s", serviceLines(services))
}

func replyNoStaff(services []model.Service) string {
	return fmt.Sprintf(
		"😔 Sorry, nobody is currently available for this service. Please choose a different service:\n\n%s",
		serviceLines(services),
	)
}

func replyStaffList(serviceName string, staff []model.StaffMember) string {
	return fmt.Sprintf(
		"✅ You've selected %s!\n\n👨‍💼 Please choose your preferred stylist:\n\n%s",
		serviceName, staffLines(staff),
	)
}

func replyInvalidStaff(staff []model.StaffMember) string {
	return fmt.Sprintf("❌ Invalid selection. Please choose your preferred stylist:\n\n%s", staffLines(staff))
}

func replyDateOptions(staffName string, today, tomorrow time.Time) string {
	return fmt.Sprintf(
		"🎉 Great! You've selected ✂️ %s.\n\n📅 Please choose your preferred date:\n\n1. 📅 Today (%s)\n2. 🌅 Tomorrow (%s)",
		staffName, today.Format(dateDisplay), tomorrow.Format(dateDisplay),
	)
}

func replyInvalidDate(today, tomorrow time.Time) string {
	return fmt.Sprintf(
		"❌ Invalid selection. Please choose:\n\n1. 📅 Today (%s)\n2. 🌅 Tomorrow (%s)",
		today.Format(dateDisplay), tomorrow.Format(dateDisplay),
	)
}

func replyNoSlots(date time.Time) string {
	return fmt.Sprintf(
		"😔 Sorry, no available slots found for %s.\n\n🔄 Please try the other date or say 'restart' to choose a different stylist.",
		date.Format(dateDisplay),
	)
}

func replySlotList(date time.Time, slots []timeslot.Minutes) string {
	return fmt.Sprintf(
		"✅ Perfect! Available times for %s:\n\n%s\n\n⏰ Please choose your preferred time:",
		date.Format(dateDisplay), slotLines(slots),
	)
}

func replyInvalidSlot(slots []timeslot.Minutes, date time.Time) string {
	return fmt.Sprintf(
		"❌ Invalid selection. Available times for %s:\n\n%s",
		date.Format(dateDisplay), slotLines(slots),
	)
}

func replyConfirmation(salonName string, b *model.Booking, contactName string) string {
	greeting := ""
	if contactName != "" && contactName != "Unknown" {
		greeting = fmt.Sprintf("Hi %s! ", contactName)
	}
	return fmt.Sprintf(
		"🎉✨ Booking Confirmed! ✨🎉\n\n%s📋 Your Appointment Details:\n🏢 Salon: %s\n💄 Service: %s\n✂️ Stylist: %s\n📅 Date: %s\n⏰ Time: %s\n\n🤗 We look forward to seeing you! Thank you for choosing %s! 💖",
		greeting, salonName, b.ServiceName, b.StaffName,
		mustParseDate(b.Date).Format(dateDisplayFull), b.TimeSlot.Format(), salonName,
	)
}

func replyConflict() string {
	return "😔 Sorry, that slot is no longer available. Please say 'restart' to start over."
}

func replyHelp(salonName string) string {
	return fmt.Sprintf(
		"🤔 I don't understand that message.\n\n💬 Please say 'hi' to start booking at %s or 'restart' to start over.",
		salonName,
	)
}

func replyInternalError() string {
	return "😔 Sorry, there was an error processing your message. Please say 'hi' to start over."
}
