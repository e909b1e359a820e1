package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/luxe/internal/models"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramService posts account security events to the admin chat. With no
// bot token or chat id configured every call is a no-op.
type TelegramService struct {
	botToken    string
	adminChatID string
	apiBase     string
	client      *http.Client
	log         *slog.Logger
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID string, log *slog.Logger) *TelegramService {
	if log == nil {
		log = slog.Default()
	}
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
		apiBase:     telegramAPIBase,
		client:      &http.Client{Timeout: 5 * time.Second},
		log:         log,
	}
}

// WithAPIBase points the service at a different Bot API host.
func (s *TelegramService) WithAPIBase(base string) *TelegramService {
	s.apiBase = strings.TrimRight(base, "/")
	return s
}

// Enabled reports whether messages will actually be sent.
func (s *TelegramService) Enabled() bool {
	return s != nil && s.botToken != "" && s.adminChatID != ""
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendToAdmin sends an HTML message to the admin chat.
func (s *TelegramService) SendToAdmin(ctx context.Context, text string) error {
	if !s.Enabled() {
		return nil
	}

	body, err := json.Marshal(telegramMessage{
		ChatID:    s.adminChatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	s.log.DebugContext(ctx, "telegram message delivered")
	return nil
}

// NotifyRegistration reports a new customer account.
func (s *TelegramService) NotifyRegistration(ctx context.Context, user *models.User) error {
	message := fmt.Sprintf("<b>New account</b>\n<b>Email:</b> %s\n<b>Name:</b> %s",
		html.EscapeString(user.Email),
		html.EscapeString(user.Name),
	)
	return s.SendToAdmin(ctx, message)
}

// NotifyPasswordReset reports a password changed through recovery.
func (s *TelegramService) NotifyPasswordReset(ctx context.Context, email string) error {
	message := fmt.Sprintf("<b>Password reset</b>\n<b>Email:</b> %s\n<i>%s</i>",
		html.EscapeString(email),
		time.Now().UTC().Format(time.RFC3339),
	)
	return s.SendToAdmin(ctx, message)
}
