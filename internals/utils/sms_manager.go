package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SMSSender delivers a text message to a phone number. The controllers
// only depend on this interface; tests swap in a recorder.
type SMSSender interface {
	SendSMS(to string, text string) error
}

type SMSConfig struct {
	APIKey    string
	APISecret string
	From      string
	// BaseURL of the SMS provider's REST endpoint; overridable for tests
	BaseURL string
}

// SMSManager sends messages through the Vonage (Nexmo) SMS API.
type SMSManager struct {
	Config *SMSConfig
	Client *http.Client
}

func NewSMSManager(config *SMSConfig) *SMSManager {
	if config.BaseURL == "" {
		config.BaseURL = "https://rest.nexmo.com/sms/json"
	}
	return &SMSManager{
		Config: config,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// smsResponse mirrors the fields we check from the provider's reply.
// Status "0" means accepted; anything else carries an error text.
type smsResponse struct {
	Messages []struct {
		Status    string `json:"status"`
		ErrorText string `json:"error-text"`
	} `json:"messages"`
}

func (sm *SMSManager) SendSMS(to string, text string) error {
	form := url.Values{}
	form.Set("api_key", sm.Config.APIKey)
	form.Set("api_secret", sm.Config.APISecret)
	form.Set("from", sm.Config.From)
	form.Set("to", to)
	form.Set("text", text)

	resp, err := sm.Client.Post(sm.Config.BaseURL, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sms provider returned HTTP %d", resp.StatusCode)
	}

	var body smsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}
	if len(body.Messages) == 0 {
		return fmt.Errorf("sms provider returned no message status")
	}
	if body.Messages[0].Status != "0" {
		return fmt.Errorf("sms delivery failed: %s", body.Messages[0].ErrorText)
	}
	return nil
}
