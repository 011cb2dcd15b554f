package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/smtp"
	"strconv"
	"ticketflix/config"

	"github.com/jordan-wright/email"
	"gopkg.in/gomail.v2"
)

// CouponIssuedData feeds templates/coupon_issued.html.
type CouponIssuedData struct {
	IssuerCode string
	Count      int
	Amount     float64
	ValidUntil string
}

// SaleConfirmationData feeds templates/sale_confirmation.html.
type SaleConfirmationData struct {
	BuyerName  string
	CouponCode string
	Amount     float64
	SeatClass  string
	BankRef    string
	SoldAt     string
}

type Attachment struct {
	Filename string
	Content  []byte
}

func sendMail(to, subject, tmplPath string, data any, attachments []Attachment) {
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("failed to load mail template %s: %v", tmplPath, err)
		return
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		log.Printf("failed to render mail template %s: %v", tmplPath, err)
		return
	}

	port, _ := strconv.Atoi(config.ConfigDefault("SMTP_PORT", "587"))

	m := gomail.NewMessage()
	m.SetHeader("From", config.Config("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	for _, att := range attachments {
		content := att.Content
		m.Attach(att.Filename, gomail.Rename(att.Filename), gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.Copy(w, bytes.NewReader(content))
			return err
		}))
	}

	d := gomail.NewDialer(config.Config("SMTP_HOST"), port, config.Config("SMTP_USERNAME"), config.Config("SMTP_PASSWORD"))
	if err := d.DialAndSend(m); err != nil {
		log.Printf("failed to send mail to %s: %v", to, err)
	}
}

// SendCouponIssuedEmail mails the printable ticket sheet to the issuing
// executive. Async so coupon generation never blocks on SMTP.
func SendCouponIssuedEmail(to string, data CouponIssuedData, sheet []byte) {
	go func() {
		attachments := []Attachment{}
		if len(sheet) > 0 {
			attachments = append(attachments, Attachment{Filename: "coupons_" + data.IssuerCode + ".pdf", Content: sheet})
		}
		sendMail(to, "Your TicketFlix coupon sheet", "templates/coupon_issued.html", data, attachments)
	}()
}

// SendSaleConfirmationEmail mails the buyer after a recorded sale.
func SendSaleConfirmationEmail(to string, data SaleConfirmationData, qrPng []byte) {
	go func() {
		attachments := []Attachment{}
		if len(qrPng) > 0 {
			attachments = append(attachments, Attachment{Filename: "coupon_" + data.CouponCode + ".png", Content: qrPng})
		}
		sendMail(to, "Coupon "+data.CouponCode+" confirmed", "templates/sale_confirmation.html", data, attachments)
	}()
}

// WelcomeEmailBody renders the plain-text credentials mail for a new
// executive account.
func WelcomeEmailBody(name, username, issuerCode string) []byte {
	return []byte(fmt.Sprintf(
		"Hi %s,\n\nYour TicketFlix executive account is ready.\n\nUsername: %s\nIssuer code: %s\n\nPlease log in and change your password.\n",
		name, username, issuerCode))
}

// SendExecutiveWelcomeEmail mails credentials to a newly created
// executive. Plain text, no template or attachments.
func SendExecutiveWelcomeEmail(to, name, username, issuerCode string) {
	go func() {
		e := email.NewEmail()
		e.From = config.Config("SMTP_FROM")
		e.To = []string{to}
		e.Subject = "Your TicketFlix executive account"
		e.Text = WelcomeEmailBody(name, username, issuerCode)

		addr := config.Config("SMTP_HOST") + ":" + config.ConfigDefault("SMTP_PORT", "587")
		auth := smtp.PlainAuth("", config.Config("SMTP_USERNAME"), config.Config("SMTP_PASSWORD"), config.Config("SMTP_HOST"))
		if err := e.Send(addr, auth); err != nil {
			log.Printf("failed to send welcome mail to %s: %v", to, err)
		}
	}()
}
