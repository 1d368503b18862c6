package utils

import (
	"bytes"
	"html/template"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// TicketLine é uma linha de ingresso no e-mail de confirmação.
type TicketLine struct {
	ItemName string
	Code     string
}

// TicketConfirmationData dados para o template do e-mail
type TicketConfirmationData struct {
	OrderCode  string
	TotalValue float64
	Tickets    []TicketLine
	DetailLink string
}

// SendTicketConfirmationEmail envia o e-mail com os ingressos (async)
func SendTicketConfirmationEmail(to string, data TicketConfirmationData) {
	go func() { // Async para não atrasar a resposta do webhook
		tmplPath := "templates/ticket_confirmation.html"
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			log.Printf("Erro ao carregar template de e-mail: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("Erro ao renderizar template de e-mail: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		port, _ := strconv.Atoi(portStr)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Seus ingressos do pedido #"+data.OrderCode)
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Erro ao enviar e-mail: %v", err)
		}
	}()
}
