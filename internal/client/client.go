// Package client ходит в serverless-эндпоинт сокращения ссылок.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	model "github.com/IgorGreusunset/shortener-ui/internal/app"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader передаётся с каждым запросом для сопоставления логов
const RequestIDHeader = "X-Request-ID"

// ErrMalformedResponse - эндпоинт ответил 2xx, но тело не содержит shortUrl
var ErrMalformedResponse = errors.New("malformed shorten response")

// APIError - неуспешный ответ эндпоинта или отсутствие ответа вообще.
// StatusCode == 0 означает сетевую ошибку.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
	RequestID  string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("api error: %v", e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("api error: %s: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("api error: %s", e.Status)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

type Client struct {
	http     *resty.Client
	endpoint string
	log      *zap.Logger
}

// Фабричный метод для создания клиента эндпоинта
func New(endpoint string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	rc := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: rc, endpoint: endpoint, log: log}
}

// Shorten отправляет длинную ссылку и возвращает короткую
func (c *Client) Shorten(ctx context.Context, longURL string) (string, error) {
	requestID := uuid.NewString()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID).
		SetBody(model.NewShortenRequest(longURL)).
		Post(c.endpoint)
	if err != nil {
		return "", &APIError{RequestID: requestID, Err: err}
	}

	if !resp.IsSuccess() {
		//Тело ошибки нужно только для логов
		c.log.Error("API Response Error",
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return "", &APIError{
			StatusCode: resp.StatusCode(),
			Status:     statusText(resp),
			Body:       resp.String(),
			RequestID:  requestID,
		}
	}

	var result model.ShortenResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", &APIError{
			StatusCode: resp.StatusCode(),
			Status:     statusText(resp),
			RequestID:  requestID,
			Err:        fmt.Errorf("%w: %v", ErrMalformedResponse, err),
		}
	}
	if result.ShortURL == "" {
		return "", &APIError{
			StatusCode: resp.StatusCode(),
			Status:     statusText(resp),
			RequestID:  requestID,
			Err:        fmt.Errorf("%w: no shortUrl field", ErrMalformedResponse),
		}
	}

	c.log.Debug("url shortened",
		zap.String("request_id", requestID),
		zap.String("short_url", result.ShortURL),
	)
	return result.ShortURL, nil
}

func statusText(resp *resty.Response) string {
	if s := resp.Status(); s != "" {
		return s
	}
	return fmt.Sprintf("%d %s", resp.StatusCode(), http.StatusText(resp.StatusCode()))
}
