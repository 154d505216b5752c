package ingestclient

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

	"github.com/sir_venger/synthmod_backend/pkg/ingestproto"
)

// ErrUnencodableID — id нельзя передать в query без экранирования, а сервер
// сравнивает значение без декодирования.
var ErrUnencodableID = errors.New("id cannot be sent verbatim in a query string")

// StatusError — ответ сервера с неуспешным статусом.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Body)
}

type Client interface {
	// Upload отправить JSON-пейлоад на сохранение
	Upload(ctx context.Context, baseURL string, body []byte) error
	// Check проверить наличие записи с именем id
	Check(ctx context.Context, baseURL, id string) (ingestproto.CheckCode, error)
}

type httpClient struct {
	c *http.Client
}

// New создаёт клиент поверх переданного http.Client; nil — http.DefaultClient.
func New(c *http.Client) Client {
	if c == nil {
		c = http.DefaultClient
	}
	return &httpClient{c: c}
}

// Upload отправляет тело как есть на POST /upload.
func (h *httpClient) Upload(ctx context.Context, baseURL string, body []byte) error {
	u := strings.TrimRight(baseURL, "/") + ingestproto.UploadPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", ingestproto.ContentTypeJSON)

	resp, err := h.c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// Check запрашивает GET /check?id=... и возвращает код наличия.
// Сервер сравнивает id без декодирования, поэтому id, требующий экранирования,
// отклоняется с ErrUnencodableID, а не отправляется в изменённом виде.
func (h *httpClient) Check(ctx context.Context, baseURL, id string) (ingestproto.CheckCode, error) {
	if url.QueryEscape(id) != id {
		return ingestproto.CheckError, fmt.Errorf("%w: %q", ErrUnencodableID, id)
	}

	u := strings.TrimRight(baseURL, "/") + ingestproto.CheckPath + "?" + ingestproto.CheckIDParam + "=" + id
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return ingestproto.CheckError, err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return ingestproto.CheckError, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ingestproto.CheckError, statusError(resp)
	}

	var code ingestproto.CheckCode
	if err = json.NewDecoder(resp.Body).Decode(&code); err != nil {
		return ingestproto.CheckError, fmt.Errorf("decode check response: %w", err)
	}

	return code, nil
}

func statusError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &StatusError{Status: resp.StatusCode, Body: string(b)}
}
