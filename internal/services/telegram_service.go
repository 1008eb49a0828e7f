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
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramService handles sending notifications to Telegram.
type TelegramService struct {
	botToken    string
	adminChatID string
	baseURL     string
	client      *http.Client
	log         *slog.Logger
}

// NewTelegramService creates a new TelegramService. With no token or chat
// configured every send is a logged no-op.
func NewTelegramService(botToken, adminChatID string, log *slog.Logger) *TelegramService {
	if log == nil {
		log = slog.Default()
	}
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
		baseURL:     telegramAPIBase,
		client:      &http.Client{Timeout: 10 * time.Second},
		log:         log.With("component", "telegram"),
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to specified chat.
func (s *TelegramService) SendMessage(ctx context.Context, chatID, text string) error {
	if s.botToken == "" {
		s.log.Warn("bot token not configured, message dropped")
		return nil
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.botToken)
	body, err := json.Marshal(telegramMessage{ChatID: chatID, Text: text, ParseMode: "HTML"})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error("send failed", "error", err)
		return fmt.Errorf("telegram: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Error("unexpected status", "status", resp.StatusCode)
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}
	return nil
}

// SendToAdmin sends a message to the admin chat.
func (s *TelegramService) SendToAdmin(ctx context.Context, text string) error {
	if s.adminChatID == "" {
		s.log.Warn("admin chat not configured, message dropped")
		return nil
	}
	return s.SendMessage(ctx, s.adminChatID, text)
}

// ContactMessage is a submission from the storefront contact form.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
	Locale  string
}

// SendContactMessage forwards a contact form submission to the admin chat.
func (s *TelegramService) SendContactMessage(ctx context.Context, msg ContactMessage) error {
	return s.SendToAdmin(ctx, FormatContactMessage(msg))
}

// FormatContactMessage renders msg as Telegram HTML with user input escaped.
func FormatContactMessage(msg ContactMessage) string {
	phone := msg.Phone
	if phone == "" {
		phone = "-"
	}
	text := fmt.Sprintf(`<b>📩 New contact message</b>
<b>👤 Name:</b> %s
<b>✉️ Email:</b> %s
<b>📞 Phone:</b> %s
<b>🌐 Locale:</b> %s
<b>📝 Subject:</b> %s
━━━━━━━━━━━━━━━━━━
%s`,
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		html.EscapeString(phone),
		html.EscapeString(msg.Locale),
		html.EscapeString(msg.Subject),
		html.EscapeString(msg.Message),
	)
	return strings.TrimSpace(text)
}
