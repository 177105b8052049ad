package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/gradebook/internal/client/models"
	"github.com/dmitrijs2005/gradebook/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

const (
	// DefaultTimeout bounds every request.
	DefaultTimeout = 5000 * time.Millisecond

	RequestIDHeader = "X-Request-ID"
	fileFieldName   = "file"
)

type HTTPClient struct {
	baseURL   string
	http      *http.Client
	store     SessionStore
	navigator Navigator
	log       logging.Logger
	requestID func() string
}

type Option func(*HTTPClient)

// WithNavigator sets who performs the hard redirect after a 401/403.
func WithNavigator(n Navigator) Option {
	return func(c *HTTPClient) { c.navigator = n }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithTransport replaces the underlying round tripper (tests, proxies).
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) { c.http.Transport = rt }
}

// New builds the request pipeline. baseURL is the API root, for example
// "http://127.0.0.1:5000/api"; a zero timeout means DefaultTimeout.
func New(baseURL string, timeout time.Duration, store SessionStore, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	c := &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: timeout, Jar: jar},
		store:     store,
		navigator: noopNavigator{},
		log:       logging.Discard(),
		requestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// authorize attaches the bearer token when one is stored.
func (c *HTTPClient) authorize(ctx context.Context, req *http.Request) {
	token, err := c.store.Token(ctx)
	if err != nil {
		c.log.Warn(ctx, "cannot read access token, sending unauthenticated", "error", err)
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// expireSession wipes the local session and sends the UI back to login.
func (c *HTTPClient) expireSession(ctx context.Context, apiErr *APIError) {
	// The wipe must happen even if the caller's context is already done.
	ctx = context.WithoutCancel(ctx)
	if err := c.store.Clear(ctx); err != nil {
		c.log.Error(ctx, "failed to clear session", "error", err)
	}
	c.log.Warn(ctx, "session rejected by server, returning to login",
		"status", apiErr.StatusCode, "path", apiErr.Path, "request_id", apiErr.RequestID)
	c.navigator.HardRedirect(LoginPath)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (http.Header, []byte, error) {
	reqID := c.requestID()
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(RequestIDHeader, reqID)
	c.authorize(ctx, req)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return nil, nil, &APIError{Method: method, Path: path, Message: err.Error(), RequestID: reqID, kind: ErrUnavailable}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Message: err.Error(), RequestID: reqID, kind: ErrUnavailable}
	}

	c.log.Debug(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode,
		"request_id", reqID, "duration", time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp.Header, payload, nil
	}

	apiErr := &APIError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Message:    extractMessage(payload),
		RequestID:  reqID,
		kind:       classify(resp.StatusCode),
	}
	if sessionExpired(resp.StatusCode) {
		c.expireSession(ctx, apiErr)
	}
	return nil, nil, apiErr
}

func (c *HTTPClient) DoJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
		contentType = "application/json"
	}

	_, payload, err := c.do(ctx, method, path, query, reader, contentType)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) Download(ctx context.Context, method, path string, query url.Values, body any) (*models.File, error) {
	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
		contentType = "application/json"
	}

	header, payload, err := c.do(ctx, method, path, query, reader, contentType)
	if err != nil {
		return nil, err
	}
	return &models.File{
		Name:        attachmentName(header.Get("Content-Disposition")),
		ContentType: header.Get("Content-Type"),
		Data:        payload,
	}, nil
}

func (c *HTTPClient) Upload(ctx context.Context, path string, upload models.Upload, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(upload.Fields))
	for k := range upload.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, upload.Fields[k]); err != nil {
			return fmt.Errorf("multipart field %s: %w", k, err)
		}
	}

	part, err := w.CreateFormFile(fileFieldName, upload.FileName)
	if err != nil {
		return fmt.Errorf("multipart file: %w", err)
	}
	if upload.Content != nil {
		if _, err := io.Copy(part, upload.Content); err != nil {
			return fmt.Errorf("read upload %s: %w", upload.FileName, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("multipart close: %w", err)
	}

	_, payload, err := c.do(ctx, http.MethodPost, path, nil, &buf, w.FormDataContentType())
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode POST %s response: %w", path, err)
	}
	return nil
}

// maxMessageLen bounds the raw body text kept in an APIError, in bytes.
const maxMessageLen = 200

// extractMessage pulls a human readable reason out of an error body.
func extractMessage(payload []byte) string {
	var body struct {
		Msg   string `json:"msg"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err == nil {
		if body.Msg != "" {
			return body.Msg
		}
		if body.Error != "" {
			return body.Error
		}
	}
	text := strings.TrimSpace(string(payload))
	if len(text) <= maxMessageLen {
		return text
	}
	// Cut on a rune boundary; backend messages are mostly multi-byte.
	cut := maxMessageLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// attachmentName returns the file name announced in Content-Disposition.
// The backend percent-encodes non-ASCII names, so the value is unescaped.
func attachmentName(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	name := params["filename"]
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	return name
}
