package services

import (
	"fmt"
	"html"
	"log"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/gomail.v2"
)

// NotificationService sends email to the configured staff distribution list.
// Chat callers treat failures as best-effort; the contact form surfaces them.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func nurseEmails() []string {
	raw := os.Getenv("SMTP_TO_NURSES")
	if raw == "" {
		return nil
	}
	var emails []string
	for _, e := range strings.Split(raw, ",") {
		if e = strings.TrimSpace(e); e != "" {
			emails = append(emails, e)
		}
	}
	return emails
}

func smtpDialer() (*gomail.Dialer, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil, fmt.Errorf("SMTP_HOST not configured")
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	return gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASSWORD")), nil
}

// SendNurseNotification emails the staff list about a new visitor message.
// The conversation link points at the admin panel, never at the public chat.
func (ns *NotificationService) SendNurseNotification(conversationID uint, messagePreview string) error {
	recipients := nurseEmails()
	if len(recipients) == 0 {
		log.Println("notifications: no nurse emails configured, skipping")
		return nil
	}

	dialer, err := smtpDialer()
	if err != nil {
		return err
	}

	messagePreview = truncateRunes(messagePreview, 200)
	chatURL := fmt.Sprintf("%s/admin/chat/%d", os.Getenv("PUBLIC_BASE_URL"), conversationID)

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", "Nuevo mensaje en BE NURSE")
	m.SetBody("text/html", fmt.Sprintf(`
		<h2>Nuevo mensaje recibido</h2>
		<p>Se ha recibido un nuevo mensaje en la plataforma BE NURSE.</p>
		<p><strong>Vista previa:</strong> %s...</p>
		<p><a href="%s">Responder en el panel de administración</a></p>
		<p><em>Recuerda: NO respondas por email. Todas las respuestas deben hacerse desde el panel.</em></p>
	`, html.EscapeString(messagePreview), chatURL))

	return dialer.DialAndSend(m)
}

// NotifyNurses is the fire-and-forget wrapper chat handlers use: failures are
// logged and swallowed so the surrounding request still succeeds.
func (ns *NotificationService) NotifyNurses(conversationID uint, messagePreview string) {
	if err := ns.SendNurseNotification(conversationID, messagePreview); err != nil {
		log.Printf("notifications: failed to notify nurses for conversation %d: %v", conversationID, err)
	}
}

// SendContactEmail relays a contact-form submission to the staff list.
func (ns *NotificationService) SendContactEmail(name, email, subject, message string) error {
	recipients := nurseEmails()
	if len(recipients) == 0 {
		return fmt.Errorf("no nurse emails configured")
	}

	dialer, err := smtpDialer()
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", "Nuevo mensaje de contacto: "+subject)
	m.SetBody("text/html", fmt.Sprintf(`
		<h2>Nuevo mensaje de contacto</h2>
		<p><strong>Asunto:</strong> %s</p>
		<p><strong>Nombre:</strong> %s</p>
		<p><strong>Email:</strong> %s</p>
		<p><strong>Mensaje:</strong></p>
		<p>%s</p>
	`, html.EscapeString(subject), html.EscapeString(name), html.EscapeString(email), html.EscapeString(message)))

	return dialer.DialAndSend(m)
}

// truncateRunes shortens s to at most n runes without splitting a multi-byte
// sequence.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
