package email

import (
	"bytes"
	"context"
	"html/template"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Sender is the interface the domains depend on
type Sender interface {
	SendTemplate(ctx context.Context, to, toName, templateName, subject string, data interface{}) error
}

// Service renders templates and delivers mail through an async queue
type Service struct {
	client    *Client
	templates map[string]*template.Template
	queue     chan *queuedEmail
	wg        sync.WaitGroup
}

type queuedEmail struct {
	to           string
	toName       string
	subject      string
	templateName string
	data         interface{}
}

// NewService creates the email service and starts its worker
func NewService(config ClientConfig) *Service {
	s := &Service{
		client:    NewClient(config),
		templates: make(map[string]*template.Template),
		queue:     make(chan *queuedEmail, 100),
	}

	s.loadTemplates()

	s.wg.Add(1)
	go s.worker()

	return s
}

func (s *Service) loadTemplates() {
	templates := map[string]string{
		"verify_email":   VerifyEmailTemplate,
		"password_reset": PasswordResetTemplate,
		"admin_message":  AdminMessageTemplate,
	}

	for name, body := range templates {
		tmpl, err := template.New(name).Parse(body)
		if err != nil {
			log.Error().Err(err).Str("template", name).Msg("Failed to parse email template")
			continue
		}
		s.templates[name] = tmpl
	}
}

// SendTemplate queues a templated email for async delivery
func (s *Service) SendTemplate(ctx context.Context, to, toName, templateName, subject string, data interface{}) error {
	select {
	case s.queue <- &queuedEmail{to: to, toName: toName, subject: subject, templateName: templateName, data: data}:
		return nil
	default:
		log.Warn().Str("to", to).Str("template", templateName).Msg("Email queue full, dropping message")
		return nil
	}
}

func (s *Service) worker() {
	defer s.wg.Done()
	for item := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := s.deliver(ctx, item); err != nil {
			log.Error().Err(err).Str("to", item.to).Str("template", item.templateName).Msg("Failed to send email")
		}
		cancel()
	}
}

func (s *Service) deliver(ctx context.Context, item *queuedEmail) error {
	tmpl, ok := s.templates[item.templateName]
	if !ok {
		log.Error().Str("template", item.templateName).Msg("Unknown email template")
		return nil
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, item.data); err != nil {
		return err
	}

	return s.client.Send(ctx, &Message{
		To:          item.to,
		ToName:      item.toName,
		Subject:     item.subject,
		HTMLContent: buf.String(),
	})
}

// Close drains the queue and stops the worker
func (s *Service) Close() {
	close(s.queue)
	s.wg.Wait()
}
