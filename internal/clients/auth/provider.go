package auth_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"feedwatch/internal/custom_errors"
	"feedwatch/internal/logger"
)

// Credential is the bearer token issued by the identity provider.
type Credential struct {
	AccessToken string    `json:"accessToken"`
	UserID      string    `json:"userId"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

//go:generate mockery --name Provider --dir . --output ../../../mocks/auth --outpkg auth_mock --filename provider.go
type Provider interface {
	SignIn(ctx context.Context, username, password string) (*Credential, error)
}

type HTTPProvider struct {
	providerURL string
	http        *http.Client
	log         *logger.Logger
}

func NewHTTPProvider(providerURL string, timeout time.Duration, log *logger.Logger) *HTTPProvider {
	return &HTTPProvider{
		providerURL: providerURL,
		http:        &http.Client{Timeout: timeout},
		log:         log,
	}
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signInResponse struct {
	AccessToken string `json:"accessToken"`
	UserID      string `json:"userId"`
	ExpiresIn   int64  `json:"expiresIn"`
}

func (p *HTTPProvider) SignIn(ctx context.Context, username, password string) (*Credential, error) {
	body, err := json.Marshal(signInRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sign-in request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.providerURL+"/token", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		p.log.Error("Identity provider unreachable", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", custom_errors.ErrExternalServiceError, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, custom_errors.ErrInvalidCredentials
	case resp.StatusCode >= 400:
		p.log.Error("Identity provider returned error status", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: unexpected status %d", custom_errors.ErrExternalServiceError, resp.StatusCode)
	}

	var token signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("%w: failed to decode token response: %v", custom_errors.ErrExternalServiceError, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", custom_errors.ErrExternalServiceError)
	}

	return &Credential{
		AccessToken: token.AccessToken,
		UserID:      token.UserID,
		ExpiresAt:   time.Now().Add(time.Duration(token.ExpiresIn) * time.Second),
	}, nil
}
