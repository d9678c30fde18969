package notifications

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	config "github.com/anjiri1684/pgym_booking/configs"
	"github.com/mailersend/mailersend-go"
)

type Attachment struct {
	Filename string
	Content  []byte
}

type Email struct {
	ToName      string
	ToEmail     string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

type Mailer interface {
	Send(ctx context.Context, email Email) error
}

type MailerSendService struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

var EmailClient Mailer

func NewMailerSendService(apiKey, senderName, senderEmail string) *MailerSendService {
	return &MailerSendService{
		client: mailersend.NewMailersend(apiKey),
		from:   mailersend.From{Name: senderName, Email: senderEmail},
	}
}

func InitEmailService() {
	apiKey := config.Config("MAILERSEND_API_KEY")
	senderEmail := config.Config("EMAIL_SENDER")
	senderName := config.String("EMAIL_SENDER_NAME", "Pgym")

	if apiKey == "" || senderEmail == "" {
		log.Println("⚠️ Email service not configured. Missing MAILERSEND_API_KEY or EMAIL_SENDER.")
		EmailClient = nil
		return
	}

	EmailClient = NewMailerSendService(apiKey, senderName, senderEmail)
	log.Println("✅ Email service initialized successfully.")
}

func recipientName(email Email) string {
	if email.ToName != "" {
		return email.ToName
	}
	if at := strings.Index(email.ToEmail, "@"); at > 0 {
		return email.ToEmail[:at]
	}
	return email.ToEmail
}

func (s *MailerSendService) Send(ctx context.Context, email Email) error {
	if email.ToEmail == "" || !strings.Contains(email.ToEmail, "@") {
		return fmt.Errorf("invalid recipient email: %s", email.ToEmail)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	msg := s.client.Email.NewMessage()
	msg.SetFrom(s.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: recipientName(email), Email: email.ToEmail}})
	msg.SetSubject(email.Subject)
	if strings.TrimSpace(email.Text) != "" {
		msg.SetText(email.Text)
	}
	if strings.TrimSpace(email.HTML) != "" {
		msg.SetHTML(email.HTML)
	}
	for _, a := range email.Attachments {
		msg.AddAttachment(mailersend.Attachment{
			Filename: a.Filename,
			Content:  base64.StdEncoding.EncodeToString(a.Content),
		})
	}

	res, err := s.client.Email.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send email via MailerSend: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("mailersend error: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
