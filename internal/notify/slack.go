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

const slackPostMessageURL = "https://slack.com/api/chat.postMessage"

// Slack posts to a channel through the chat.postMessage API with a bot
// token. BaseURL is overridable for tests.
type Slack struct {
	Token   string
	Channel string
	BaseURL string
	Client  *http.Client
}

func NewSlack(token, channel string) *Slack {
	if token == "" || channel == "" {
		return nil
	}
	return &Slack{
		Token:   token,
		Channel: channel,
		BaseURL: slackPostMessageURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type slackPayload struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

func (s *Slack) Send(ctx context.Context, _ string, body string) error {
	if s == nil || s.Token == "" {
		return errors.New("slack disabled")
	}
	payload, _ := json.Marshal(slackPayload{Channel: s.Channel, Text: body})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.Token)

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("slack status %d", resp.StatusCode)
	}
	return nil
}
