package carapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultBaseURL {
		t.Fatalf("base = %q, want %q", u.String(), defaultBaseURL)
	}

	u, err = parseBaseURL("api.example.com:8443/v1/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "api.example.com:8443" {
		t.Fatalf("url = %q, want http://api.example.com:8443", u.String())
	}
	if u.Path != "/v1" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL(http://) returned nil error, want missing host")
	}
}

func TestClient_SendsDefaultHeaders(t *testing.T) {
	t.Parallel()

	var got http.Header
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{BaseURL: server.URL + "/v1", APIKey: "secret"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/api/cars", Body: map[string]string{"brand": "Fiat"}})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if gotPath != "/v1/api/cars" {
		t.Fatalf("path = %q, want /v1/api/cars", gotPath)
	}
	if got.Get("Accept") != "application/json" {
		t.Fatalf("Accept = %q, want application/json", got.Get("Accept"))
	}
	if got.Get("Content-Type") != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", got.Get("Content-Type"))
	}
	if got.Get(DefaultAPIKeyHeader) != "secret" {
		t.Fatalf("%s = %q, want secret", DefaultAPIKeyHeader, got.Get(DefaultAPIKeyHeader))
	}
	if got.Get("X-Request-ID") == "" {
		t.Fatalf("X-Request-ID missing")
	}
	if !strings.HasPrefix(got.Get("User-Agent"), "carview/") {
		t.Fatalf("User-Agent = %q, want carview/*", got.Get("User-Agent"))
	}

	_, err = c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/cars"})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if got.Get("Content-Type") != "" {
		t.Fatalf("Content-Type = %q on bodiless request, want empty", got.Get("Content-Type"))
	}
}

func TestClient_CustomHeaderOverridesDefault(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{BaseURL: server.URL, APIKey: "k1", APIKeyHeader: "Authorization"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	hdr := http.Header{}
	hdr.Set("Authorization", "k2")
	if _, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/", Header: hdr}); err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if gotKey != "k2" {
		t.Fatalf("Authorization = %q, want caller override k2", gotKey)
	}
}

func TestClient_TimeoutAbortsRequest(t *testing.T) {
	t.Parallel()

	aborted := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			close(aborted)
		case <-time.After(5 * time.Second):
			w.WriteHeader(http.StatusOK)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	start := time.Now()
	_, err = c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/cars"})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Do error = %v, want ErrTimeout", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Timeout != 50*time.Millisecond {
		t.Fatalf("timeout carried = %#v, want 50ms", apiErr)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("Do took %v, want it to give up near the timeout", elapsed)
	}

	select {
	case <-aborted:
	case <-time.After(2 * time.Second):
		t.Fatalf("server never observed the request being aborted")
	}
}

func TestClient_ParentCancelIsNotTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err = c.Do(ctx, Request{Method: http.MethodGet, Path: "/"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Do error = %v, want context.Canceled", err)
	}
	if errors.Is(err, ErrTimeout) {
		t.Fatalf("Do error = %v, cancellation must not be reported as a timeout", err)
	}
}

func TestClient_ConnectionRefusedIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := NewClient(Options{BaseURL: url})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/cars"})
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("Do error = %v, want ErrNetwork", err)
	}
}

func TestClassifyTransport_FallsBackToMessageText(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"cors", errors.New("blocked by CORS policy"), ErrCORS},
		{"access control", errors.New("missing Access-Control-Allow-Origin"), ErrCORS},
		{"network", errors.New("NetworkError when attempting to fetch resource"), ErrNetwork},
		{"deadline", context.DeadlineExceeded, ErrTimeout},
		{"unknown", errors.New("something odd"), ErrNetwork},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyTransport(ctx, tc.err, time.Second)
			if !errors.Is(got, tc.want) {
				t.Fatalf("classifyTransport(%v) = %v, want kind %v", tc.err, got, tc.want)
			}
			if !errors.Is(got, tc.err) {
				t.Fatalf("classifyTransport(%v) lost the cause", tc.err)
			}
		})
	}
}
