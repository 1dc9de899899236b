package models

// M2MTokenResponse is the client-credentials response from the auth
// server used for elevated events-API calls.
type M2MTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

type AuthConfig struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
}
