package counter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/rs/zerolog/log"
)

// TokenSubject identifies the bot in counter service tokens
const TokenSubject = "tg-define"

// Request is the counter service request body
type Request struct {
	Increment bool `json:"increment"`
}

// Response is the counter service response body
type Response struct {
	TotalLookups int64 `json:"totalLookups"`
}

// Client implements integration with the lookup counter service
type Client struct {
	url    string
	secret []byte
	client *http.Client
}

// Increment asks the counter service to count one more lookup
func (c Client) Increment(ctx context.Context) (Response, error) {
	var result Response
	jdata, err := json.Marshal(Request{Increment: true})
	if err != nil {
		return result, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jdata))
	if err != nil {
		return result, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if len(c.secret) > 0 {
		token, err := SignToken(c.secret, time.Minute)
		if err != nil {
			return result, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return result, fmt.Errorf("post counter: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Debug().
			Str("status", resp.Status).
			Str("body", string(body)).
			Msg("unsuccessful response from counter")
		return result, fmt.Errorf("unsuccessful counter response %v", resp.StatusCode)
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return result, fmt.Errorf("unmarshal response: %w", err)
	}
	return result, nil
}

// SignToken creates HS256 token accepted by the counter service
func SignToken(secret []byte, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   TokenSubject,
		IssuedAt:  now.Unix(),
		NotBefore: now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	})
	tokenStr, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return tokenStr, nil
}

// NewClient creates counter client, empty secret disables authorization header
func NewClient(url string, secret string) Client {
	return Client{url: url, secret: []byte(secret), client: http.DefaultClient}
}
