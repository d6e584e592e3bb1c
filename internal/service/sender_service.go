package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"time"

	"parkgate/internal/db"
	"parkgate/internal/entities"
	"parkgate/internal/templates"
)

var receiptTmpl = template.Must(template.New("receipt_email").Parse(templates.ReceiptEmailHTML))

// SenderService sends exit receipts. Delivery is fire-and-forget: a failed
// email or SMS never affects the exit flow that triggered it.
type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

// SendExitReceipt mails and texts the fare receipt for a closed ticket to
// the driver contact captured at entry. Tickets without contact details are
// skipped silently.
func (s *SenderService) SendExitReceipt(ticket *db.Ticket) {
	if ticket.ExitTime == nil {
		log.Printf("Receipt requested for open ticket %s, skipping", ticket.Code)
		return
	}
	if ticket.DriverEmail != "" {
		s.sendReceiptEmail(ticket)
	}
	if ticket.DriverPhone != "" {
		s.sendReceiptSMS(ticket)
	}
}

func (s *SenderService) sendReceiptEmail(ticket *db.Ticket) {
	subject, plainTextBody, htmlBody := buildReceiptEmail(ticket)

	go func(toEmail, subject, plainBody, htmlBodyContent string) {
		if err := SendEmailWithSendGrid(toEmail, "", subject, plainBody, htmlBodyContent); err != nil {
			log.Printf("Receipt email for ticket %s failed: %v", ticket.Code, err)
		}
	}(ticket.DriverEmail, subject, plainTextBody, htmlBody)
}

// buildReceiptEmail renders the receipt subject and bodies. The HTML body
// falls back to the plain text when the template fails to render.
func buildReceiptEmail(ticket *db.Ticket) (subject, plainTextBody, htmlBody string) {
	data := entities.ReceiptEmailData{
		TicketCode:         ticket.Code,
		VehicleReg:         ticket.VehicleReg,
		SpotID:             ticket.SpotID,
		EntryTimeFormatted: ticket.EntryTime.Format("02 Jan 2006 15:04 MST"),
		ExitTimeFormatted:  ticket.ExitTime.Format("02 Jan 2006 15:04 MST"),
		DurationMinutes:    int(ticket.ExitTime.Sub(ticket.EntryTime).Minutes()),
		Price:              ticket.Price,
		CurrentYear:        time.Now().Year(),
	}

	subject = fmt.Sprintf("Your Parkgate receipt - Ticket %s", data.TicketCode)
	plainTextBody = fmt.Sprintf(
		"Hello,\n\nThank you for parking with Parkgate.\n\n"+
			"Receipt:\n"+
			"Ticket: %s\n"+
			"Vehicle: %s (spot %d)\n"+
			"Entry: %s\n"+
			"Exit: %s\n"+
			"Duration: %d minutes\n"+
			"Fare: %.2f\n\n"+
			"Parkgate. All rights reserved.",
		data.TicketCode, data.VehicleReg, data.SpotID,
		data.EntryTimeFormatted, data.ExitTimeFormatted,
		data.DurationMinutes, data.Price,
	)

	htmlBody = plainTextBody
	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, data); err != nil {
		log.Printf("Could not render receipt email for ticket %s: %v", data.TicketCode, err)
	} else {
		htmlBody = buf.String()
	}
	return subject, plainTextBody, htmlBody
}

func (s *SenderService) sendReceiptSMS(ticket *db.Ticket) {
	message := fmt.Sprintf("Parkgate: vehicle %s exited at %s. Fare: %.2f. Ticket %s.",
		ticket.VehicleReg,
		ticket.ExitTime.Format("02/01 15:04"),
		ticket.Price,
		ticket.Code,
	)

	go func(toNumber, body string) {
		if err := SendSMS(toNumber, body); err != nil {
			log.Printf("Receipt SMS for ticket %s failed: %v", ticket.Code, err)
		}
	}(ticket.DriverPhone, message)
}
