package userservice

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

// Client клиент для работы с UserService
// UserService владеет пользователями, ролями и профилями инструкторов;
// этот сервис потребляет их только для чтения
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetUser получает пользователя по ID
func (c *Client) GetUser(ctx context.Context, userID int64) (*User, error) {
	url := fmt.Sprintf("%s/internal/users/%d", c.baseURL, userID)

	var user User
	if err := c.getJSON(ctx, url, &user, ErrUserNotFound); err != nil {
		return nil, err
	}

	return &user, nil
}

// GetInstructorProfile получает профиль инструктора по ID пользователя
// Возвращает ErrInstructorNotFound, если пользователь не инструктор
// или профиль отсутствует
func (c *Client) GetInstructorProfile(ctx context.Context, userID int64) (*InstructorProfile, error) {
	url := fmt.Sprintf("%s/internal/instructors/%d/profile", c.baseURL, userID)

	var profile InstructorProfile
	if err := c.getJSON(ctx, url, &profile, ErrInstructorNotFound); err != nil {
		return nil, err
	}

	return &profile, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
// notFoundErr возвращается при 404 от сервиса
func (c *Client) getJSON(ctx context.Context, url string, dest interface{}, notFoundErr error) error {
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
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid user ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
