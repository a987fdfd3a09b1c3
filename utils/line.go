package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kittiphat/volunteerhub/config"
)

// LINE Messaging API endpoints. Delivery is a black-box collaborator; this
// client only hands a message over and reports transport-level failure.
const (
	linePushEndpoint      = "https://api.line.me/v2/bot/message/push"
	lineBroadcastEndpoint = "https://api.line.me/v2/bot/message/broadcast"
)

var lineHTTPClient = &http.Client{Timeout: 10 * time.Second}

// ErrLineNotConfigured is returned when no channel token is configured.
var ErrLineNotConfigured = errors.New("LINE channel token not configured")

type lineMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type linePushBody struct {
	To       string        `json:"to,omitempty"`
	Messages []lineMessage `json:"messages"`
}

// PushLineMessage sends a text message to a single LINE user.
func PushLineMessage(to, text string) error {
	return sendLine(linePushEndpoint, linePushBody{
		To:       to,
		Messages: []lineMessage{{Type: "text", Text: text}},
	})
}

// BroadcastLineMessage sends a text message to all followers.
func BroadcastLineMessage(text string) error {
	return sendLine(lineBroadcastEndpoint, linePushBody{
		Messages: []lineMessage{{Type: "text", Text: text}},
	})
}

func sendLine(endpoint string, body linePushBody) error {
	cfg := config.Get()
	if cfg.LineChannelToken == "" {
		return ErrLineNotConfigured
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.LineChannelToken)

	resp, err := lineHTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("LINE API returned status %d", resp.StatusCode)
	}
	return nil
}
