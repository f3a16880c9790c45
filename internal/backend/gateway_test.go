package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func staticToken(token string) TokenSource {
	return func(ctx context.Context) string { return token }
}

func TestGatewayAttachesBearerToken(t *testing.T) {
	var gotAuth, gotContentType string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	gw := NewGateway(ts.URL, staticToken("secret-token"))
	if _, err := gw.Get(context.Background(), "api/customers"); err != nil {
		t.Fatalf("get: %v", err)
	}

	if gotAuth != "Bearer secret-token" {
		t.Errorf("authorization = %q, want Bearer secret-token", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("content-type = %q, want application/json", gotContentType)
	}
}

func TestGatewayOmitsEmptyToken(t *testing.T) {
	var sawAuth bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	gw := NewGateway(ts.URL, staticToken(""))
	if _, err := gw.Get(context.Background(), "api/customers"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if sawAuth {
		t.Error("authorization header sent for an unauthenticated operator")
	}
}

func TestGatewayNonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer ts.Close()

	gw := NewGateway(ts.URL, nil)
	_, err := gw.Get(context.Background(), "api/customers")

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error type = %T, want *RequestError", err)
	}
	if reqErr.Status != http.StatusForbidden || reqErr.Method != http.MethodGet || reqErr.Path != "api/customers" {
		t.Errorf("request error = %+v", reqErr)
	}
}

func TestGatewayPutToleratesMalformedBody(t *testing.T) {
	for _, body := range []string{"", "OK", "<html>done</html>"} {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))

		gw := NewGateway(ts.URL, nil)
		raw, err := gw.Put(context.Background(), "api/customers/1", map[string]string{"name": "x"})
		ts.Close()

		if err != nil {
			t.Fatalf("put with body %q: %v", body, err)
		}
		var parsed struct {
			Success bool `json:"success"`
		}
		if jsonErr := json.Unmarshal(raw, &parsed); jsonErr != nil || !parsed.Success {
			t.Errorf("put with body %q yielded %s, want the synthetic success", body, raw)
		}
	}
}

func TestGatewayDeleteToleratesMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		w.Write([]byte("deleted"))
	}))
	defer ts.Close()

	gw := NewGateway(ts.URL, nil)
	if _, err := gw.Delete(context.Background(), "api/customers/1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestGatewayGetRejectsMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer ts.Close()

	gw := NewGateway(ts.URL, nil)
	if _, err := gw.Get(context.Background(), "api/customers"); err == nil {
		t.Error("malformed GET body accepted; reads must parse strictly")
	}
}

func TestGatewayNormalizesBaseURL(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	// No trailing slash on the base; the gateway adds it.
	gw := NewGateway(ts.URL, nil)
	if _, err := gw.Get(context.Background(), "api/customers"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotPath != "/api/customers" {
		t.Errorf("path = %q, want /api/customers", gotPath)
	}
}
