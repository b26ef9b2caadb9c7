package garmin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
)

const (
	defaultSSOURL = "https://sso.garmin.com"
	tokenFileName = "token.json"
)

// Login ensures the client holds a valid session token. A persisted token
// is reused when still valid; otherwise a credential login is performed,
// with one interactive MFA prompt if the account requires it, and the fresh
// token is persisted for the next run.
func (c *Client) Login(ctx context.Context) error {
	if tok, err := c.tokens.load(); err == nil && tok.Valid() {
		c.tokens.token = tok
		return nil
	}

	tok, err := c.credentialLogin(ctx)
	if err != nil {
		return err
	}
	c.tokens.token = tok
	if err := c.tokens.save(tok); err != nil {
		return fmt.Errorf("persist session token: %w", err)
	}
	return nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type mfaRequest struct {
	MFAToken string `json:"mfaToken"`
	Code     string `json:"code"`
}

type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
	MFARequired  bool   `json:"mfaRequired"`
	MFAToken     string `json:"mfaToken"`
}

func (r loginResponse) token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Duration(r.ExpiresIn) * time.Second),
	}
}

func (c *Client) credentialLogin(ctx context.Context) (*oauth2.Token, error) {
	if c.creds.Email == "" || c.creds.Password == "" {
		return nil, fmt.Errorf("%w: missing credentials", ErrAuth)
	}

	resp, err := c.postJSON(ctx, c.ssoURL+"/portal/api/login", loginRequest{
		Username: c.creds.Email,
		Password: c.creds.Password,
	})
	if err != nil {
		return nil, err
	}

	if resp.MFARequired {
		if c.mfaPrompt == nil {
			return nil, ErrMFARequired
		}
		code, err := c.mfaPrompt()
		if err != nil {
			return nil, fmt.Errorf("read MFA code: %w", err)
		}
		resp, err = c.postJSON(ctx, c.ssoURL+"/portal/api/mfa", mfaRequest{
			MFAToken: resp.MFAToken,
			Code:     code,
		})
		if err != nil {
			return nil, err
		}
	}

	if resp.AccessToken == "" {
		return nil, fmt.Errorf("%w: login returned no token", ErrAuth)
	}
	return resp.token(), nil
}

func (c *Client) postJSON(ctx context.Context, url string, payload any) (*loginResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("garmin: encode login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("garmin: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("garmin: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("garmin: decode login response: %w", err)
	}
	return &out, nil
}

// tokenStore persists the session token so repeat runs skip the credential
// login entirely.
type tokenStore struct {
	dir   string
	token *oauth2.Token
}

func (s *tokenStore) current() *oauth2.Token { return s.token }

func (s *tokenStore) path() string { return filepath.Join(s.dir, tokenFileName) }

func (s *tokenStore) load() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parse token file %s: %w", s.path(), err)
	}
	return &tok, nil
}

func (s *tokenStore) save(tok *oauth2.Token) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(), data, 0o600)
}
