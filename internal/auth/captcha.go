package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RecaptchaVerifyURL is Google's server-side verification endpoint.
const RecaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// CaptchaVerifier checks the challenge token a browser obtained with the public site key.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

// NoopVerifier accepts every token. Used when no secret is configured.
type NoopVerifier struct{}

func (NoopVerifier) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	return true, nil
}

// RecaptchaVerifier verifies tokens against the reCAPTCHA siteverify API.
type RecaptchaVerifier struct {
	Secret     string
	VerifyURL  string
	HTTPClient *http.Client
}

// NewCaptchaVerifier returns a RecaptchaVerifier, or NoopVerifier for an empty secret.
func NewCaptchaVerifier(secret string) CaptchaVerifier {
	if secret == "" {
		return NoopVerifier{}
	}
	return &RecaptchaVerifier{
		Secret:     secret,
		VerifyURL:  RecaptchaVerifyURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type recaptchaResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

func (v *RecaptchaVerifier) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	if token == "" {
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", v.Secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.VerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("captcha verification request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("captcha verification returned %d", resp.StatusCode)
	}

	var out recaptchaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("decode captcha verification: %w", err)
	}
	return out.Success, nil
}
