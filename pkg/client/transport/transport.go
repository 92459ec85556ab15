// Package transport issues JSON requests against the governance API and
// normalizes every failure into *Error.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const DefaultTimeout = 30 * time.Second

// Credentials yields the bearer token kept under key, if any.
type Credentials interface {
	Lookup(key string) (string, bool)
}

// Request describes a single call. Body, when set, is sent JSON encoded.
type Request struct {
	Method string
	Path   string
	Body   any
	Header http.Header
}

type Transport struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	creds      Credentials
	tokenKey   string
	validate   *validator.Validate
}

type Option func(*Transport)

func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) { t.httpClient = c }
}

// WithTimeout sets the deadline applied to every call.
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) { t.timeout = d }
}

// WithCredentials attaches the token stored under tokenKey to outgoing requests.
func WithCredentials(creds Credentials, tokenKey string) Option {
	return func(t *Transport) {
		t.creds = creds
		t.tokenKey = tokenKey
	}
}

// WithValidator replaces the response validator; nil disables validation.
func WithValidator(v *validator.Validate) Option {
	return func(t *Transport) { t.validate = v }
}

func New(baseURL string, opts ...Option) *Transport {
	t := &Transport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		validate:   validator.New(),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Do issues req and decodes a successful JSON response into out.
// out may be nil when the caller does not need the body.
func (t *Transport) Do(ctx context.Context, req Request, out any) error {
	logger := zerolog.Ctx(ctx)
	start := time.Now()

	err := t.do(ctx, req, out)

	event := logger.Debug()
	if err != nil {
		event = logger.Warn().Err(err)
	}
	event.
		Str("method", req.Method).
		Str("path", req.Path).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	return err
}

func (t *Transport) do(ctx context.Context, req Request, out any) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return networkError(fmt.Errorf("encode request body: %w", err))
		}
		body = bytes.NewReader(b)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, t.baseURL+req.Path, body)
	if err != nil {
		return networkError(err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	for key, values := range req.Header {
		httpReq.Header.Del(key)
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if token, ok := t.token(); ok {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return classify(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return httpError(resp.StatusCode, statusText(resp))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return classify(ctx, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return decodeError("decode response", err)
	}
	if err := t.validatePayload(out); err != nil {
		return decodeError("invalid response", err)
	}
	return nil
}

func (t *Transport) token() (string, bool) {
	if t.creds == nil || t.tokenKey == "" {
		return "", false
	}
	token, ok := t.creds.Lookup(t.tokenKey)
	return token, ok && token != ""
}

func classify(ctx context.Context, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return timeoutError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return timeoutError(err)
	}
	return networkError(err)
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// validatePayload checks decoded structs, or each struct of a decoded slice,
// against their validate tags.
func (t *Transport) validatePayload(out any) error {
	if t.validate == nil {
		return nil
	}

	v := reflect.ValueOf(out)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		return t.validate.Struct(v.Interface())
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			item := v.Index(i)
			for item.Kind() == reflect.Pointer && !item.IsNil() {
				item = item.Elem()
			}
			if item.Kind() != reflect.Struct {
				continue
			}
			if err := t.validate.Struct(item.Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}
