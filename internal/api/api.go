package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// ErrMissingURL is returned when the service accepts an upload but its
// response carries no URL.
var ErrMissingURL = errors.New("upload response did not contain a url")

// StatusError is a non-2xx response from the upload service.
type StatusError struct {
	Status int
	Reason string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upload rejected: status %d: %s", e.Status, e.Reason)
}

type uploadResponse struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type Client struct {
	http     *resty.Client
	endpoint string
	key      string
}

func NewClient(endpoint, key string) *Client {
	return &Client{
		http:     resty.New(),
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
	}
}

// UploadImage posts the raw bytes of one image and returns the URL the
// service stored it under. There are no retries.
func (c *Client) UploadImage(ctx context.Context, name string, data []byte) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-API-Key", c.key).
		SetHeader("Content-Type", "application/octet-stream").
		SetHeader("X-File-Name", name).
		SetBody(data).
		SetResult(&uploadResponse{}).
		SetError(&errorResponse{}).
		Post(c.endpoint + "/images")
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}

	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return "", &StatusError{Status: resp.StatusCode(), Reason: reason(resp)}
	}

	result, ok := resp.Result().(*uploadResponse)
	if !ok || result.URL == "" {
		// resty only decodes bodies labelled as JSON
		result = &uploadResponse{}
		if err := json.Unmarshal(resp.Body(), result); err != nil || result.URL == "" {
			return "", ErrMissingURL
		}
	}
	return result.URL, nil
}

func reason(resp *resty.Response) string {
	if e, ok := resp.Error().(*errorResponse); ok {
		if e.Error != "" {
			return e.Error
		}
		if e.Message != "" {
			return e.Message
		}
	}
	if body := strings.TrimSpace(resp.String()); body != "" {
		return body
	}
	if text := http.StatusText(resp.StatusCode()); text != "" {
		return text
	}
	return "unknown error"
}
