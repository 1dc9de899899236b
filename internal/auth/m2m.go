package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"ms-checkout/internal/logger"
	"ms-checkout/internal/models"
)

// GetM2MToken retrieves a machine-to-machine token from the auth
// server via the client-credentials grant. Elevated events-API calls
// attach this token.
func GetM2MToken(ctx context.Context, cfg models.AuthConfig, client *http.Client) (*models.M2MTokenResponse, error) {
	data := url.Values{}
	data.Set("grant_type", "client_credentials")
	data.Set("client_id", cfg.ClientID)
	data.Set("client_secret", cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to get token, status %s: %s", resp.Status, string(bodyBytes))
	}

	var tokenResp models.M2MTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	return &tokenResp, nil
}

// TokenSource hands out a valid elevated token, preferring the token
// store and falling back to a fresh client-credentials exchange.
type TokenSource struct {
	Config models.AuthConfig
	Cache  TokenStore
	Client *http.Client
	Logger *logger.Logger
}

func NewTokenSource(cfg models.AuthConfig, cache TokenStore, client *http.Client, log *logger.Logger) *TokenSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &TokenSource{Config: cfg, Cache: cache, Client: client, Logger: log}
}

// Token returns a bearer token for elevated calls. A cached token is
// reused only while its JWT exp claim is comfortably in the future.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	if ts.Cache != nil {
		cached, err := ts.Cache.GetToken(ctx)
		if err != nil {
			ts.Logger.Warn("AUTH", fmt.Sprintf("token cache read failed: %v", err))
		} else if cached != nil && !TokenExpiringSoon(cached.Token) {
			return cached.Token, nil
		}
	}

	fresh, err := GetM2MToken(ctx, ts.Config, ts.Client)
	if err != nil {
		return "", err
	}

	if ts.Cache != nil {
		if err := ts.Cache.SetToken(ctx, fresh.AccessToken, fresh.ExpiresIn); err != nil {
			ts.Logger.Warn("AUTH", fmt.Sprintf("token cache write failed: %v", err))
		}
	}
	return fresh.AccessToken, nil
}
