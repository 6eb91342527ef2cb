package prodirectory

import (
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

// Client клиент для работы с каталогом исполнителей
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ProDirectory
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetProfile получает профиль исполнителя по ID
func (c *Client) GetProfile(ctx context.Context, proProfileID string) (*ProProfile, error) {
	url := fmt.Sprintf("%s/internal/pros/%s", c.baseURL, proProfileID)

	var profile ProProfile
	if err := c.get(ctx, url, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByUserID получает профиль исполнителя по ID пользователя.
// Используется для резолва ProProfileID актора с ролью PRO.
func (c *Client) GetProfileByUserID(ctx context.Context, userID string) (*ProProfile, error) {
	url := fmt.Sprintf("%s/internal/users/%s/pro-profile", c.baseURL, userID)

	var profile ProProfile
	if err := c.get(ctx, url, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetPayoutProfile получает платёжные реквизиты исполнителя
func (c *Client) GetPayoutProfile(ctx context.Context, proProfileID string) (*PayoutProfile, error) {
	url := fmt.Sprintf("%s/internal/pros/%s/payout-profile", c.baseURL, proProfileID)

	var profile PayoutProfile
	if err := c.get(ctx, url, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrProfileNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
