package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/client/credentials"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// Refresher exchanges a refresh credential for a new pair. The returned
// RefreshToken is empty when the endpoint did not rotate it.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (credentials.Credentials, error)
}

// RefreshMode says how the refresh credential travels to the endpoint.
type RefreshMode string

const (
	RefreshInBody   RefreshMode = "body"
	RefreshInCookie RefreshMode = "cookie"
)

const maxRefreshBody = 1 << 20

// HTTPRefresher calls the token refresh endpoint with POST.
type HTTPRefresher struct {
	client     *http.Client
	url        string
	mode       RefreshMode
	cookieName string
}

func NewHTTPRefresher(client *http.Client, url string, mode RefreshMode, cookieName string) *HTTPRefresher {
	if client == nil {
		client = http.DefaultClient
	}
	if mode == "" {
		mode = RefreshInBody
	}
	if cookieName == "" {
		cookieName = "refreshToken"
	}
	return &HTTPRefresher{client: client, url: url, mode: mode, cookieName: cookieName}
}

func (r *HTTPRefresher) Refresh(ctx context.Context, refreshToken string) (credentials.Credentials, error) {
	req, err := r.newRequest(ctx, refreshToken)
	if err != nil {
		return credentials.Credentials{}, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return credentials.Credentials{}, fmt.Errorf("refresh request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRefreshBody))
	if err != nil {
		return credentials.Credentials{}, fmt.Errorf("read refresh response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return credentials.Credentials{}, &RefreshError{Status: resp.StatusCode, Message: common.ServerMessage(data)}
	}

	issued := credentials.Credentials{
		AccessToken:  common.FirstString(data, "accessToken", "access_token"),
		RefreshToken: common.FirstString(data, "refreshToken", "refresh_token"),
	}
	if !issued.HasAccess() {
		return credentials.Credentials{}, ErrMalformedRefreshResponse
	}
	if !issued.HasRefresh() && r.mode == RefreshInCookie {
		for _, c := range resp.Cookies() {
			if c.Name == r.cookieName && c.Value != "" {
				issued.RefreshToken = c.Value
			}
		}
	}
	return issued, nil
}

func (r *HTTPRefresher) newRequest(ctx context.Context, refreshToken string) (*http.Request, error) {
	var body io.Reader
	if r.mode == RefreshInBody {
		payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, body)
	if err != nil {
		return nil, fmt.Errorf("build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", common.ContentTypeJSON)
	if r.mode == RefreshInCookie {
		req.AddCookie(&http.Cookie{Name: r.cookieName, Value: refreshToken})
	}
	return req, nil
}
