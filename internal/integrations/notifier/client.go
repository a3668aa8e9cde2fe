package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент сервиса уведомлений
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента. Пустой baseURL отключает отправку.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Enabled возвращает true, если адрес сервиса уведомлений задан
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// SendClassesGenerated отправляет событие о созданных занятиях
func (c *Client) SendClassesGenerated(ctx context.Context, event *ClassesGenerated) error {
	url := fmt.Sprintf("%s/internal/notifications/classes-generated", c.baseURL)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to encode event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		var errResp ErrorResponse
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &errResp) == nil && errResp.Message != "" {
			return fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}
}

// NotifyClassesGenerated отправляет событие с graceful degradation.
// Недоступность сервиса уведомлений не должна откатывать уже сохраненные занятия,
// поэтому ошибка оборачивается в ErrServiceDegraded и только логируется вызывающим.
func (c *Client) NotifyClassesGenerated(ctx context.Context, event *ClassesGenerated) error {
	if !c.Enabled() {
		c.log.Info("Notifier disabled, skipping classes-generated event for pattern_id=%d", event.PatternID)
		return nil
	}

	if err := c.SendClassesGenerated(ctx, event); err != nil {
		c.log.Error("Notifier unavailable, applying graceful degradation for pattern_id=%d: %v", event.PatternID, err)
		return fmt.Errorf("%w: pattern_id=%d, error=%v", ErrServiceDegraded, event.PatternID, err)
	}

	c.log.Info("Sent classes-generated event for pattern_id=%d, classes=%d", event.PatternID, len(event.ClassIDs))
	return nil
}
