// Package client HTTP клиент API отслеживания. Токен берется из Sessions
// на каждый запрос, ответы с ошибками переводятся в Error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"courier-tracking/internal/entities"
	"courier-tracking/internal/generated/dto"
	"courier-tracking/internal/lifecycle"
	"courier-tracking/internal/pkg/dtoconv"
	"courier-tracking/pkg/logger"
)

const (
	DefaultTimeout = 15 * time.Second

	// тело ошибки больше этого не читаем
	maxErrorBody = 64 << 10
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL  *url.URL
	http     *http.Client
	sessions Sessions
	log      logger.Logger
	now      func() time.Time
}

func New(cfg Config, sessions Sessions, log logger.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("client, parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("client, base url %q: scheme must be http or https", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	log = log.With(logger.NewField("component", "api_client"))
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
			Transport: &BearerRoundTripper{
				Tokens: sessions,
				Proxied: &LoggingRoundTripper{
					Log:     log,
					Proxied: http.DefaultTransport,
				},
			},
		},
		sessions: sessions,
		log:      log,
		now:      time.Now,
	}, nil
}

// Track публичный запрос, токен не нужен.
func (c *Client) Track(ctx context.Context, trackingID string) (entities.Shipment, error) {
	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		return entities.Shipment{}, &lifecycle.ValidationError{Field: "trackingId", Reason: "is required"}
	}

	var out dto.Shipment
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/track/" + url.PathEscape(trackingID),
	}, &out); err != nil {
		return entities.Shipment{}, err
	}
	return shipmentFromDTO(out)
}

// Login 401 здесь означает неверные учетные данные, сессию не трогаем.
func (c *Client) Login(ctx context.Context, creds entities.AdminCredentials) (entities.AdminSession, error) {
	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		return entities.AdminSession{}, &lifecycle.ValidationError{Field: "credentials", Reason: "email and password are required"}
	}

	var out dto.AdminSession
	if err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/admin/login",
		body:   dto.AdminLoginRequest{Email: strings.TrimSpace(creds.Email), Password: creds.Password},
	}, &out); err != nil {
		return entities.AdminSession{}, err
	}
	return dtoconv.SessionFromDTO(out), nil
}

func (c *Client) ListShipments(ctx context.Context) ([]entities.Shipment, error) {
	var out []dto.Shipment
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/admin/all-shipments",
		auth:   true,
	}, &out); err != nil {
		return nil, err
	}

	shipments := make([]entities.Shipment, 0, len(out))
	for _, d := range out {
		s, err := shipmentFromDTO(d)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}
	return shipments, nil
}

func (c *Client) CreateShipment(ctx context.Context, in entities.ShipmentCreate) (entities.Shipment, error) {
	if err := lifecycle.ValidateCreate(in); err != nil {
		return entities.Shipment{}, err
	}

	var out dto.Shipment
	if err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/admin/create-shipment",
		body:   dtoconv.CreateToDTO(in),
		auth:   true,
	}, &out); err != nil {
		return entities.Shipment{}, err
	}
	return shipmentFromDTO(out)
}

// EditShipment правка целиком без нового события в истории.
func (c *Client) EditShipment(ctx context.Context, trackingID string, patch entities.ShipmentModify) (entities.Shipment, error) {
	path, err := shipmentPath(trackingID)
	if err != nil {
		return entities.Shipment{}, err
	}
	if err := lifecycle.ValidateModify(patch); err != nil {
		return entities.Shipment{}, err
	}

	var out dto.Shipment
	if err := c.do(ctx, request{
		method: http.MethodPut,
		path:   path,
		body:   dtoconv.ModifyToDTO(patch),
		auth:   true,
	}, &out); err != nil {
		return entities.Shipment{}, err
	}
	return shipmentFromDTO(out)
}

func (c *Client) DeleteShipment(ctx context.Context, trackingID string) error {
	path, err := shipmentPath(trackingID)
	if err != nil {
		return err
	}

	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   path,
		auth:   true,
	}, nil)
}

// UpdateTracking добавляет событие в историю отправления.
func (c *Client) UpdateTracking(ctx context.Context, upd entities.TrackingUpdate) (entities.Shipment, error) {
	upd.TrackingID = strings.TrimSpace(upd.TrackingID)
	if upd.TrackingID == "" {
		return entities.Shipment{}, &lifecycle.ValidationError{Field: "trackingId", Reason: "is required"}
	}
	if _, err := lifecycle.NewEvent(upd, c.now()); err != nil {
		return entities.Shipment{}, err
	}

	var out dto.Shipment
	if err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/admin/update-tracking",
		body:   dtoconv.TrackingUpdateToDTO(upd),
		auth:   true,
	}, &out); err != nil {
		return entities.Shipment{}, err
	}
	return shipmentFromDTO(out)
}

// UpdateProfile возвращает новую сессию, старый токен после этого
// недействителен.
func (c *Client) UpdateProfile(ctx context.Context, email, password *string) (entities.AdminSession, error) {
	if email == nil && password == nil {
		return entities.AdminSession{}, &lifecycle.ValidationError{Field: "profile", Reason: "email or password is required"}
	}

	var out dto.AdminSession
	if err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/admin/profile",
		body:   dto.ProfileUpdate{Email: email, Password: password},
		auth:   true,
	}, &out); err != nil {
		return entities.AdminSession{}, err
	}
	return dtoconv.SessionFromDTO(out), nil
}

type request struct {
	method string
	path   string
	body   any
	auth   bool
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	if r.auth && c.sessions.Token() == "" {
		return authRequired()
	}

	var body io.Reader
	if r.body != nil {
		raw, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("client, encode %s %s: %w", r.method, r.path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL.String()+r.path, body)
	if err != nil {
		return fmt.Errorf("client, build %s %s: %w", r.method, r.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &Error{Kind: ErrNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.responseError(r, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: ErrServer, StatusCode: resp.StatusCode, Message: "malformed response body", Err: err}
	}
	return nil
}

func (c *Client) responseError(r request, resp *http.Response) error {
	apiErr := &Error{
		Kind:       kindForStatus(resp.StatusCode),
		StatusCode: resp.StatusCode,
		Message:    readMessage(resp.Body),
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	if r.auth && resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn("session rejected by server, logging out", logger.NewField("path", r.path))
		if err := c.sessions.Logout(); err != nil {
			return errors.Join(apiErr, fmt.Errorf("client, forced logout: %w", err))
		}
	}
	return apiErr
}

func readMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(raw, &resp); err == nil && resp.Message != "" {
		return resp.Message
	}
	return strings.TrimSpace(string(raw))
}

func shipmentPath(trackingID string) (string, error) {
	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		return "", &lifecycle.ValidationError{Field: "trackingId", Reason: "is required"}
	}
	return "/admin/shipment/" + url.PathEscape(trackingID), nil
}

func shipmentFromDTO(d dto.Shipment) (entities.Shipment, error) {
	s, err := dtoconv.ShipmentFromDTO(d)
	if err != nil {
		return entities.Shipment{}, &Error{Kind: ErrServer, Message: "malformed shipment in response", Err: err}
	}
	return s, nil
}
