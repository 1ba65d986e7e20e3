package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"dentinv/config"
)

// Generic Send Email. Goes through SendGrid when an API key is configured,
// plain SMTP otherwise.
func SendEmail(to []string, subject string, htmlBody string) error {
	if config.AppConfig.SendGridAPIKey != "" {
		return sendViaSendGrid(to, subject, htmlBody)
	}
	return sendViaSMTP(to, subject, htmlBody)
}

func sendViaSendGrid(to []string, subject string, htmlBody string) error {
	client := sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey)
	from := mail.NewEmail("Clinica Newen", config.AppConfig.EmailSender)

	for _, recipient := range to {
		message := mail.NewSingleEmail(from, subject, mail.NewEmail("", recipient), "", htmlBody)
		response, err := client.Send(message)
		if err != nil {
			log.Printf("Error sending email via SendGrid: %v", err)
			return err
		}
		if response.StatusCode >= 400 {
			log.Printf("SendGrid rejected email: %d %s", response.StatusCode, response.Body)
			return fmt.Errorf("sendgrid status %d", response.StatusCode)
		}
	}
	return nil
}

func sendViaSMTP(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Clinica Newen <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

// HTML Wrapper for clinic emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #0B7285; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #212529; line-height: 1.6; }
			.content h2 { color: #0B7285; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F6F8; padding: 15px; border-radius: 4px; border-left: 4px solid #0B7285; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>CLINICA NEWEN</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Clinica Newen. Inventario interno.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendLowStockAlert mails the configured recipient about an item running low.
// Fire-and-forget: callers are not transactionally linked to the outcome.
func SendLowStockAlert(itemName string) {
	subject := "Alerta de bajo inventario"
	body := fmt.Sprintf(`
		<p>El item <strong>%s</strong> tiene un stock bajo, por favor re abastecer.</p>
		<div class="info-box">Revise el panel de inventario para confirmar las cantidades actuales.</div>
	`, itemName)

	if err := SendEmail([]string{config.AppConfig.AlertRecipient}, subject, getEmailTemplate("Stock bajo: "+itemName, body)); err != nil {
		log.Printf("Error sending low stock alert for %q: %v", itemName, err)
	}
}
