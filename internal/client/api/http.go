package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/credentials"
	"github.com/dmitrijs2005/storefront/internal/client/gateway"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

const maxResponseBody = 4 << 20

// Authenticator sends a request with the session's access credential.
// *gateway.Gateway implements it.
type Authenticator interface {
	Do(ctx context.Context, req gateway.Request) (*http.Response, error)
}

type HTTPClient struct {
	baseURL string
	public  *http.Client
	auth    Authenticator
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, public *http.Client, auth Authenticator, log logging.Logger) *HTTPClient {
	if public == nil {
		public = http.DefaultClient
	}
	if log == nil {
		log = logging.Nop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		public:  public,
		auth:    auth,
		log:     log.With("component", "api"),
	}
}

// Ping reports whether the API answers at all. Any HTTP status counts.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.url("product"), nil)
	if err != nil {
		return err
	}
	resp, err := c.public.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return &APIError{Status: resp.StatusCode}
	}
	return nil
}

func (c *HTTPClient) Products(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.publicCall(ctx, http.MethodGet, c.url("product"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Product(ctx context.Context, id string) (models.Product, error) {
	var out models.Product
	err := c.publicCall(ctx, http.MethodGet, c.url("product", id), nil, &out)
	return out, err
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (credentials.Credentials, error) {
	var raw json.RawMessage
	if err := c.publicCall(ctx, http.MethodPost, c.url("user", "login"), req, &raw); err != nil {
		return credentials.Credentials{}, err
	}
	creds := credentials.Credentials{
		AccessToken:  common.FirstString(raw, "accessToken", "access_token"),
		RefreshToken: common.FirstString(raw, "refreshToken", "refresh_token"),
	}
	if !creds.HasAccess() {
		return credentials.Credentials{}, errors.New("login response carries no access credential")
	}
	return creds, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.publicCall(ctx, http.MethodPost, c.url("user", "register"), req, nil)
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.authCall(ctx, http.MethodPost, c.url("user", "logout"), nil, nil)
}

func (c *HTTPClient) Me(ctx context.Context) (models.User, error) {
	var out models.User
	err := c.authCall(ctx, http.MethodGet, c.url("user", "me"), nil, &out)
	return out, err
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, req models.ProfileUpdate) error {
	return c.authCall(ctx, http.MethodPost, c.url("user", "update"), req, nil)
}

func (c *HTTPClient) ChangePassword(ctx context.Context, req models.PasswordChange) error {
	return c.authCall(ctx, http.MethodPost, c.url("user", "change"), req, nil)
}

// CreateOrder places an order. The created order is decoded from the response
// root or from its "order" field; it is zero when the server returned neither.
func (c *HTTPClient) CreateOrder(ctx context.Context, order models.NewOrder) (models.Order, error) {
	var raw json.RawMessage
	if err := c.authCall(ctx, http.MethodPost, c.url("user", "order"), order, &raw); err != nil {
		return models.Order{}, err
	}

	var out models.Order
	for _, path := range []string{"order", "@this"} {
		r := gjson.GetBytes(raw, path)
		if r.IsObject() && r.Get("orderNumber").Exists() {
			if err := json.Unmarshal([]byte(r.Raw), &out); err != nil {
				return models.Order{}, fmt.Errorf("decode order: %w", err)
			}
			break
		}
	}
	return out, nil
}

func (c *HTTPClient) Orders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := c.authCall(ctx, http.MethodGet, c.url("user", "order"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) UpdateOrder(ctx context.Context, number int64, upd models.OrderUpdate) error {
	return c.authCall(ctx, http.MethodPut, c.url("user", "order", strconv.FormatInt(number, 10), "update"), upd, nil)
}

func (c *HTTPClient) CancelOrder(ctx context.Context, number int64) error {
	return c.authCall(ctx, http.MethodPut, c.url("user", "order", strconv.FormatInt(number, 10), "cancel"), nil, nil)
}

func (c *HTTPClient) url(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return c.baseURL + "/" + strings.Join(escaped, "/")
}

func (c *HTTPClient) publicCall(ctx context.Context, method, target string, in, out any) error {
	body, err := encode(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader(body))
	if err != nil {
		return err
	}
	req.Header = newHeader(body != nil)

	resp, err := c.public.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return c.finish(ctx, method, target, resp, out)
}

func (c *HTTPClient) authCall(ctx context.Context, method, target string, in, out any) error {
	if c.auth == nil {
		return errors.New("api: authenticated call without gateway")
	}
	body, err := encode(in)
	if err != nil {
		return err
	}

	resp, err := c.auth.Do(ctx, gateway.Request{
		Method: method,
		URL:    target,
		Header: newHeader(body != nil),
		Body:   body,
	})
	if err != nil {
		if errors.Is(err, gateway.ErrAuthenticationFailed) || errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return c.finish(ctx, method, target, resp, out)
}

func (c *HTTPClient) finish(ctx context.Context, method, target string, resp *http.Response, out any) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := mapResponse(resp.StatusCode, data); err != nil {
		c.log.Debug(ctx, "api call failed", "method", method, "url", target, "status", resp.StatusCode)
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, target, err)
	}
	return nil
}

func encode(in any) ([]byte, error) {
	if in == nil {
		return nil, nil
	}
	b, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return b, nil
}

func bodyReader(b []byte) io.Reader {
	if b == nil {
		return nil
	}
	return bytes.NewReader(b)
}

func newHeader(hasBody bool) http.Header {
	h := http.Header{}
	h.Set("Accept", common.ContentTypeJSON)
	h.Set(common.RequestIDHeader, uuid.NewString())
	if hasBody {
		h.Set("Content-Type", common.ContentTypeJSON)
	}
	return h
}
