package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const sendgridSendURL = "https://api.sendgrid.com/v3/mail/send"

// Mail sends a plain-text email through the SendGrid v3 API. Reserved for
// Alert escalation; routine reports stay in chat.
type Mail struct {
	Token      string
	Sender     string
	Recipients []string
	BaseURL    string
	Client     *http.Client
}

func NewMail(token, sender string, recipients []string) *Mail {
	if token == "" || sender == "" || len(recipients) == 0 {
		return nil
	}
	return &Mail{
		Token:      token,
		Sender:     sender,
		Recipients: recipients,
		BaseURL:    sendgridSendURL,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type mailAddress struct {
	Email string `json:"email"`
}

type mailPersonalization struct {
	To      []mailAddress `json:"to"`
	Subject string        `json:"subject"`
}

type mailContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type mailPayload struct {
	Personalizations []mailPersonalization `json:"personalizations"`
	From             mailAddress           `json:"from"`
	Content          []mailContent         `json:"content"`
}

func (m *Mail) Send(ctx context.Context, subject, body string) error {
	if m == nil || m.Token == "" {
		return errors.New("mail disabled")
	}

	to := make([]mailAddress, 0, len(m.Recipients))
	for _, r := range m.Recipients {
		to = append(to, mailAddress{Email: r})
	}
	payload, _ := json.Marshal(mailPayload{
		Personalizations: []mailPersonalization{{To: to, Subject: subject}},
		From:             mailAddress{Email: m.Sender},
		Content:          []mailContent{{Type: "text/plain", Value: body}},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.Token)

	resp, err := m.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("sendgrid status %d", resp.StatusCode)
	}
	return nil
}
