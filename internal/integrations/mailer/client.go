package mailer

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
	Error(format string, v ...interface{})
}

// Client клиент сервиса транзакционных писем
// Сервис внешний и непрозрачный: URL, тело запроса и таймаут — весь контракт
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента рассылки
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет письмо по шаблону
func (c *Client) Send(ctx context.Context, templateID, recipient string, payload map[string]interface{}) error {
	url := fmt.Sprintf("%s/v1/send", c.baseURL)

	body, err := json.Marshal(SendRequest{
		TemplateID: templateID,
		Recipient:  recipient,
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// SendWithGracefulDegradation отправляет письмо, не позволяя сбою рассылки
// провалить бизнес-операцию: при любой ошибке возвращает ErrServiceDegraded
// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
func (c *Client) SendWithGracefulDegradation(ctx context.Context, templateID, recipient string, payload map[string]interface{}) error {
	c.log.Info("Sending %s mail to %s", templateID, recipient)

	if err := c.Send(ctx, templateID, recipient, payload); err != nil {
		c.log.Error("Mailer unavailable, applying graceful degradation for template=%s recipient=%s: %v",
			templateID, recipient, err)
		return fmt.Errorf("%w: template=%s, error=%v", ErrServiceDegraded, templateID, err)
	}

	c.log.Info("Successfully sent %s mail to %s", templateID, recipient)
	return nil
}
