package paymentprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client HTTP-клиент платёжного провайдера.
// Ошибки транспорта и 5xx мапятся в ErrUnavailable (transient),
// явные отказы провайдера (4xx) - в ErrRejected (permanent).
type Client struct {
	name       string
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента платёжного провайдера
func NewClient(name, baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		name:    name,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Name возвращает идентификатор провайдера
func (c *Client) Name() string {
	return c.name
}

// CreatePreauth создает предавторизацию (hold) средств клиента
func (c *Client) CreatePreauth(ctx context.Context, req PreauthRequest) (*PreauthResult, error) {
	var result PreauthResult
	if err := c.post(ctx, "/v1/preauths", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Capture списывает авторизованную сумму
func (c *Client) Capture(ctx context.Context, providerReference string, amount int64) (*CaptureResult, error) {
	path := fmt.Sprintf("/v1/preauths/%s/capture", providerReference)

	var result CaptureResult
	if err := c.post(ctx, path, CaptureRequest{Amount: amount}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Refund возвращает списанные средства клиенту
func (c *Client) Refund(ctx context.Context, providerReference string) error {
	path := fmt.Sprintf("/v1/preauths/%s/refund", providerReference)
	return c.post(ctx, path, struct{}{}, nil)
}

// Void снимает авторизацию без списания
func (c *Client) Void(ctx context.Context, providerReference string) error {
	path := fmt.Sprintf("/v1/preauths/%s/void", providerReference)
	return c.post(ctx, path, struct{}{}, nil)
}

// GetStatus опрашивает провайдера о текущем состоянии платежа
func (c *Client) GetStatus(ctx context.Context, providerReference string) (*PaymentState, error) {
	url := fmt.Sprintf("%s/v1/preauths/%s", c.baseURL, providerReference)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrPaymentNotFound
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status code %d", ErrUnavailable, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status code %d: %s", ErrRejected, resp.StatusCode, string(body))
	}

	var state PaymentState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &state, nil
}

// post выполняет POST запрос с JSON телом; out == nil, если тело ответа не нужно
func (c *Client) post(ctx context.Context, path string, in interface{}, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("PaymentProvider %s: transport error on %s: %v", c.name, path, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		return ErrPaymentNotFound
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		c.log.Warn("PaymentProvider %s: transient failure on %s: status=%d", c.name, path, resp.StatusCode)
		return fmt.Errorf("%w: status code %d", ErrUnavailable, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		c.log.Warn("PaymentProvider %s: rejected on %s: status=%d body=%s", c.name, path, resp.StatusCode, string(body))
		return fmt.Errorf("%w: status code %d: %s", ErrRejected, resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
