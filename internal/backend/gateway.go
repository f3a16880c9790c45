package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// TokenSource supplies the bearer token for outgoing requests. It returns ""
// when the operator is unauthenticated, in which case requests are sent
// without an Authorization header rather than failing.
type TokenSource func(ctx context.Context) string

// RequestError reports a non-2xx response from the backend API.
type RequestError struct {
	Method string
	Path   string
	Status int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s failed (HTTP %d)", e.Method, e.Path, e.Status)
}

// Gateway is the uniform request/response wrapper around the tailoring REST
// API: it attaches the credential, serializes JSON bodies, and normalizes
// non-2xx responses into *RequestError. Auth is stateless bearer-only; no
// cookies are ever sent.
type Gateway struct {
	base   string
	tokens TokenSource
	client *http.Client
}

// NewGateway creates a gateway for the given base URL. Relative API paths
// are appended to the base, which is normalized to end with a slash.
func NewGateway(baseURL string, tokens TokenSource) *Gateway {
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Gateway{
		base:   baseURL,
		tokens: tokens,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// syntheticSuccess is substituted for PUT/DELETE responses whose body is
// empty or not JSON: success is determined by HTTP status, not body shape.
var syntheticSuccess = json.RawMessage(`{"success":true}`)

// Get issues a GET and returns the parsed JSON body.
func (g *Gateway) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return g.do(ctx, http.MethodGet, path, nil, true)
}

// Post issues a POST with a JSON body and returns the parsed JSON response.
func (g *Gateway) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s body: %w", path, err)
	}
	return g.do(ctx, http.MethodPost, path, bytes.NewReader(payload), true)
}

// Put issues a PUT with a JSON body. A body-less or malformed success
// response yields a synthetic {"success":true} result.
func (g *Gateway) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s body: %w", path, err)
	}
	return g.do(ctx, http.MethodPut, path, bytes.NewReader(payload), false)
}

// Delete issues a DELETE. Like Put, a malformed success body is tolerated.
func (g *Gateway) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return g.do(ctx, http.MethodDelete, path, nil, false)
}

func (g *Gateway) do(ctx context.Context, method, path string, body io.Reader, strictBody bool) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, g.base+path, body)
	if err != nil {
		return nil, err
	}
	g.setHeaders(ctx, req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{Method: method, Path: path, Status: resp.StatusCode}
	}

	if !json.Valid(raw) || len(bytes.TrimSpace(raw)) == 0 {
		if strictBody {
			return nil, fmt.Errorf("%s %s: malformed JSON response", method, path)
		}
		return syntheticSuccess, nil
	}
	return json.RawMessage(raw), nil
}

// Upload issues a multipart POST with the spreadsheet as the "file" part and
// an empty JSON object as the companion "data" part. The Content-Type header
// comes from the multipart writer; the bearer credential is still attached.
func (g *Gateway) Upload(ctx context.Context, path, filename string, file io.Reader) (json.RawMessage, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(fw, file); err != nil {
		return nil, fmt.Errorf("copy upload file: %w", err)
	}

	dw, err := mw.CreateFormField("data")
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := dw.Write([]byte("{}")); err != nil {
		return nil, fmt.Errorf("write upload data part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finish upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.base+path, &buf)
	if err != nil {
		return nil, err
	}
	g.setHeaders(ctx, req)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read POST %s response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{Method: http.MethodPost, Path: path, Status: resp.StatusCode}
	}
	if !json.Valid(raw) || len(bytes.TrimSpace(raw)) == 0 {
		// Any 2xx import response counts as success even without a body.
		return json.RawMessage(`{}`), nil
	}
	return json.RawMessage(raw), nil
}

func (g *Gateway) setHeaders(ctx context.Context, req *http.Request) {
	if g.tokens == nil {
		return
	}
	if token := g.tokens(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
