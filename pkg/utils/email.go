package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"net/url"
	"strings"

	"github.com/feestindetent/booking-backend/internal/models"
)

const companyName = "Feest in de Tent"

// Common header template for all emails
const emailHeader = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="text-align: center; margin-bottom: 30px; background-color: #f9f9f9; padding: 20px;">
			<h2 style="color: #d97706; margin: 0;">Feest in de Tent</h2>
		</div>
`

// Common footer template for all emails
const emailFooter = `
		<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 20px;">
			<p>Dit is een automatisch bericht, gelieve niet te antwoorden.</p>
			<p>© 2026 Feest in de Tent. Alle rechten voorbehouden.</p>
		</div>
	</div>
</body>
</html>
`

// Mailer sends the transactional booking emails over SMTP. All delivery is
// fire-and-forget from the caller's perspective: a failed notification is
// logged but never rolls back the booking it describes.
type Mailer struct {
	from     string
	password string
	host     string
	port     string
	baseURL  string
}

func NewMailer(from, password, host, port, baseURL string) *Mailer {
	return &Mailer{
		from:     from,
		password: password,
		host:     host,
		port:     port,
		baseURL:  baseURL,
	}
}

func (m *Mailer) send(to []string, subject, body string) error {
	if m.from == "" || m.password == "" || m.host == "" || m.port == "" {
		return fmt.Errorf("email configuration not set")
	}

	// Headers
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", companyName, m.from)
	headers["To"] = strings.Join(to, ",")
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"
	headers["X-Mailer"] = "FeestInDeTent-Mailer"

	// Build message
	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + body

	// Authentication
	auth := smtp.PlainAuth("", m.from, m.password, m.host)

	// Send email
	err := smtp.SendMail(m.host+":"+m.port, auth, m.from, to, []byte(message))
	if err != nil {
		log.Printf("Failed to send email: %v", err)
		return err
	}

	log.Printf("Successfully sent email to recipients: %v", to)
	return nil
}

// SendBookingNotification mails the business a new reservation request with
// every booking detail and a link that approves it.
func (m *Mailer) SendBookingNotification(businessEmail string, b *models.Booking, approvalToken string) error {
	subject := fmt.Sprintf("Nieuwe feesttent reservering - %s", b.CustomerName)
	approveURL := fmt.Sprintf("%s/api/bookings/approve?token=%s", m.baseURL, url.QueryEscape(approvalToken))

	comments := b.Comments
	if comments == "" {
		comments = "Geen"
	}

	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Nieuwe reservering</h1>
					<table style="width: 100%%; border-collapse: collapse;">
						<tr><td style="padding: 4px 8px;"><strong>Tenttype</strong></td><td>%s</td></tr>
						<tr><td style="padding: 4px 8px;"><strong>Datum</strong></td><td>%s</td></tr>
						<tr><td style="padding: 4px 8px;"><strong>Tijd</strong></td><td>%s</td></tr>
						<tr><td style="padding: 4px 8px;"><strong>Adres</strong></td><td>%s</td></tr>
						<tr><td style="padding: 4px 8px;"><strong>Naam</strong></td><td>%s</td></tr>
						<tr><td style="padding: 4px 8px;"><strong>Email</strong></td><td>%s</td></tr>
						<tr><td style="padding: 4px 8px;"><strong>Telefoon</strong></td><td>%s</td></tr>
						<tr><td style="padding: 4px 8px;"><strong>Opmerkingen</strong></td><td>%s</td></tr>
						<tr><td style="padding: 4px 8px;"><strong>Basisprijs</strong></td><td>€%.2f</td></tr>
						<tr><td style="padding: 4px 8px;"><strong>Leveringskost</strong></td><td>€%.2f</td></tr>
						<tr><td style="padding: 4px 8px;"><strong>Totaalprijs</strong></td><td>€%.2f</td></tr>
						<tr><td style="padding: 4px 8px;"><strong>Status</strong></td><td>%s</td></tr>
					</table>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s" style="background-color: #d97706; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">Boeking goedkeuren</a>
					</div>
				</div>`+emailFooter,
		b.TentType, FormatDateNL(b.DeliveryDate), b.DeliveryTime, b.Address.FullAddress(),
		b.CustomerName, b.CustomerEmail, b.CustomerPhone, comments,
		b.BasePrice, b.DeliveryCost, b.Total, b.Status, approveURL)

	return m.send([]string{businessEmail}, subject, body)
}

// SendApprovalConfirmation mails the customer after the business approves
// the booking, with the deposit instructions that lock in the date.
func (m *Mailer) SendApprovalConfirmation(b *models.Booking) error {
	subject := "Feest in de Tent: bevestiging boeking na betaling voorschot"

	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Boeking goedgekeurd</h1>
					<p>Hoi %s,</p>
					<p>Proficiat met je feest in de tent boeking op <strong>%s</strong>!</p>
					<p>Om de boeking vast te leggen betaal je een voorschot van <strong>€100</strong> op rekening BE XXXXXXXX.</p>
					<p>Met vriendelijke groet,<br>Het Feest in de Tent team</p>
				</div>`+emailFooter,
		b.CustomerName, FormatDateNL(b.DeliveryDate))

	return m.send([]string{b.CustomerEmail}, subject, body)
}
