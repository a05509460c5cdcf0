package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rpupo63/gaffer-portfolio-backend/config"
	"github.com/rpupo63/gaffer-portfolio-backend/metrics"
	"github.com/rpupo63/gaffer-portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	notProvided        = "Not provided"
	notificationLayout = "02/01/2006 at 15:04"
	adminNotifyTimeout = 15 * time.Second
)

// EmailJSRequest represents the request payload for the EmailJS send API
type EmailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// Delivery is the outcome of a best-effort send. Err is set on every failure
// and is only meant for logging.
type Delivery struct {
	Sent bool
	Err  error
}

type EmailStatus struct {
	ServiceID  bool `json:"service_id"`
	TemplateID bool `json:"template_id"`
	UserID     bool `json:"user_id"`
	Configured bool `json:"configured"`
}

// Notifier sends contact emails through EmailJS. Failures never propagate to
// callers as errors.
type Notifier struct {
	settings config.EmailJSSettings
	client   *http.Client
	logger   zerolog.Logger
	inflight sync.WaitGroup
}

func NewNotifier(settings config.EmailJSSettings, client *http.Client) *Notifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Notifier{
		settings: settings,
		client:   client,
		logger:   log.With().Str("service", "notifier").Logger(),
	}
}

// SendContactEmail forwards a visitor message to the site owner's inbox.
func (n *Notifier) SendContactEmail(ctx context.Context, msg models.ContactMessage) Delivery {
	params := map[string]string{
		"from_name":  msg.Name,
		"from_email": msg.Email,
		"phone":      orNotProvided(msg.Phone),
		"subject":    msg.Subject,
		"message":    msg.Message,
		"to_name":    n.settings.OwnerName,
		"reply_to":   msg.Email,
	}
	d := n.send(ctx, n.settings.TemplateID, params)
	metrics.RecordEmail("contact", d.Sent)
	if d.Sent {
		n.logger.Info().Str("email", msg.Email).Msg("contact email sent")
	} else {
		n.logger.Error().Err(d.Err).Str("email", msg.Email).Msg("contact email not sent")
	}
	return d
}

// SendAdminNotification tells the admin a new message arrived.
func (n *Notifier) SendAdminNotification(ctx context.Context, msg models.ContactMessage) Delivery {
	template := n.settings.NotificationTemplate
	if template == "" {
		template = n.settings.TemplateID
	}
	params := map[string]string{
		"admin_name":   n.settings.AdminName,
		"client_name":  msg.Name,
		"client_email": msg.Email,
		"client_phone": orNotProvided(msg.Phone),
		"subject":      msg.Subject,
		"message":      msg.Message,
		"date":         msg.CreatedAt.Format(notificationLayout),
	}
	d := n.send(ctx, template, params)
	metrics.RecordEmail("admin_notification", d.Sent)
	if d.Sent {
		n.logger.Info().Str("messageId", msg.ID).Msg("admin notification sent")
	} else {
		n.logger.Warn().Err(d.Err).Str("messageId", msg.ID).Msg("admin notification not sent")
	}
	return d
}

// NotifyAdminAsync sends the admin notification in the background, outliving
// the request that triggered it.
func (n *Notifier) NotifyAdminAsync(msg models.ContactMessage) {
	n.inflight.Add(1)
	go func() {
		defer n.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), adminNotifyTimeout)
		defer cancel()
		n.SendAdminNotification(ctx, msg)
	}()
}

// Wait blocks until every background notification has finished.
func (n *Notifier) Wait() {
	n.inflight.Wait()
}

func (n *Notifier) ValidateConfig() EmailStatus {
	status := EmailStatus{
		ServiceID:  n.settings.ServiceID != "",
		TemplateID: n.settings.TemplateID != "",
		UserID:     n.settings.UserID != "",
	}
	status.Configured = status.ServiceID && status.TemplateID && status.UserID
	if !status.Configured {
		n.logger.Warn().Msg("EmailJS is not fully configured")
	}
	return status
}

func (n *Notifier) send(ctx context.Context, templateID string, params map[string]string) Delivery {
	payload := EmailJSRequest{
		ServiceID:      n.settings.ServiceID,
		TemplateID:     templateID,
		UserID:         n.settings.UserID,
		AccessToken:    n.settings.PrivateKey,
		TemplateParams: params,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return Delivery{Err: fmt.Errorf("failed to marshal email payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.settings.URL, bytes.NewReader(jsonPayload))
	if err != nil {
		return Delivery{Err: fmt.Errorf("failed to create EmailJS request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return Delivery{Err: fmt.Errorf("failed to send request to EmailJS: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Delivery{Err: fmt.Errorf("emailjs error (status %d): %s", resp.StatusCode, string(body))}
	}
	return Delivery{Sent: true}
}

func orNotProvided(s string) string {
	if s == "" {
		return notProvided
	}
	return s
}
