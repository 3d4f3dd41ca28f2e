// Package api содержит HTTP-клиент для взаимодействия с сервером заметок.
//
// Клиент инкапсулирует базовый URL сервера и настроенный http.Client,
// предоставляя методы для отправки JSON-запросов (POST/GET/PUT/DELETE)
// с авторизацией через Bearer токен.
//
// Особенности:
//   - baseURL нормализуется (обрезаются завершающие "/").
//   - По умолчанию добавляется заголовок Accept: application/json.
//   - Заголовок Content-Type: application/json добавляется только при наличии тела запроса.
//   - При ответах 204 No Content тело не читается и это считается успехом.
//   - Пустое тело ответа (EOF при декодировании) не считается ошибкой.
//   - Ошибочный ответ (не 2xx) превращается в *errors.APIError с message/code сервера.
//   - Сетевые ошибки: errors.ErrTransport с общим текстом для пользователя.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	serr "github.com/mustafaciftc/notebook-app/internal/shared/errors"
)

// DefaultTimeout: таймаут одного запроса по умолчанию.
const DefaultTimeout = 10 * time.Second

// Client реализует HTTP-клиент для общения с сервером заметок.
//
// Поля:
//   - baseURL: базовый адрес сервера без завершающего слэша.
//   - http: настроенный http.Client (таймаут, транспорт).
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient создаёт новый HTTP-клиент для общения с сервером.
//
// baseURL: например "http://127.0.0.1:5000".
func NewClient(baseURL string) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: DefaultTimeout})
}

// NewClientWithHTTP позволяет подставить свой http.Client (тесты, TLS).
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// BaseURL возвращает адрес сервера.
func (c *Client) BaseURL() string { return c.baseURL }

// readAPIError читает тело ошибочного ответа.
//
// Поведение:
//   - JSON с полем message: берём message и code;
//   - иначе текст тела (trim пробелов);
//   - пустое тело: res.Status.
func readAPIError(res *http.Response) error {
	raw, _ := io.ReadAll(res.Body)

	apiErr := &serr.APIError{Status: res.StatusCode}
	var body struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
		apiErr.Code = body.Code
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(raw))
	if apiErr.Message == "" {
		apiErr.Message = res.Status
	}
	return apiErr
}

// decodeJSONOrOK декодирует JSON из r в resp.
//
// Если resp == nil, ничего не делает. Пустое тело (io.EOF) не ошибка.
func decodeJSONOrOK(r io.Reader, resp any) error {
	if resp == nil {
		return nil
	}
	err := json.NewDecoder(r).Decode(resp)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// transportError: сервер недоступен, ответа нет.
func transportError(err error) error {
	return serr.WithMessage(fmt.Errorf("%w: %v", serr.ErrTransport, err), serr.MsgTransport)
}

// do отправляет запрос и разбирает ответ.
//
// Обработка ответа:
//   - 204 No Content: успех без попытки декодирования тела;
//   - прочие 2xx: декодирует JSON в resp (если resp != nil);
//   - не 2xx: *errors.APIError.
func (c *Client) do(ctx context.Context, method, path string, req, resp any, authToken string) error {
	var body io.Reader
	if req != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(req); err != nil {
			return err
		}
		body = &buf
	}

	r, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	r.Header.Set("Accept", "application/json")
	if req != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		r.Header.Set("Authorization", "Bearer "+authToken)
	}

	res, err := c.http.Do(r)
	if err != nil {
		return transportError(err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return readAPIError(res)
	}

	// 204/пустое тело: ок
	if res.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := decodeJSONOrOK(res.Body, resp); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// PostJSON выполняет POST-запрос, сериализуя req в JSON.
// Если req == nil, тело не отправляется и Content-Type не устанавливается.
func (c *Client) PostJSON(ctx context.Context, path string, req, resp any, authToken string) error {
	return c.do(ctx, http.MethodPost, path, req, resp, authToken)
}

// GetJSON выполняет GET-запрос и (опционально) декодирует JSON-ответ.
func (c *Client) GetJSON(ctx context.Context, path string, resp any, authToken string) error {
	return c.do(ctx, http.MethodGet, path, nil, resp, authToken)
}

// PutJSON выполняет PUT-запрос с JSON-телом.
func (c *Client) PutJSON(ctx context.Context, path string, req, resp any, authToken string) error {
	return c.do(ctx, http.MethodPut, path, req, resp, authToken)
}

// DeleteJSON выполняет DELETE-запрос.
func (c *Client) DeleteJSON(ctx context.Context, path string, resp any, authToken string) error {
	return c.do(ctx, http.MethodDelete, path, nil, resp, authToken)
}
