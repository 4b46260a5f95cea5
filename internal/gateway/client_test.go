package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quatet/storefront-api/pkg/auth"
	"github.com/quatet/storefront-api/pkg/config"
	pkgerrors "github.com/quatet/storefront-api/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(config.UpstreamConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return client, srv
}

func TestCallDecodesEnvelope(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("missing bearer header, got %q", got)
		}
		w.Write([]byte(`{"status":200,"msg":"success","data":{"totalItem":3}}`))
	})

	ctx := auth.WithToken(context.Background(), "tok-1")
	count, err := client.CartCount(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected count 3, got %d", count)
	}
}

func TestCallOmitsBearerWhenAnonymous(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("unexpected Authorization header on anonymous call")
		}
		w.Write([]byte(`{"status":200,"msg":"success","data":[]}`))
	})

	if _, err := client.Categories(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCallMapsRejectionWithMessage(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":400,"msg":"quantity exceeds stock","data":null}`))
	})

	_, err := client.AddCartItem(context.Background(), 7, 99)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeRemoteRejected {
		t.Fatalf("expected REMOTE_REJECTED, got %v", err)
	}
	if typed.Message() != "quantity exceeds stock" {
		t.Fatalf("expected platform message passthrough, got %q", typed.Message())
	}
}

func TestCallMapsRejectionFallbackMessage(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":500,"msg":"","data":null}`))
	})

	err := client.ClearCart(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeRemoteRejected {
		t.Fatalf("expected REMOTE_REJECTED, got %v", err)
	}
	if typed.Message() != "request rejected by platform" {
		t.Fatalf("expected generic fallback, got %q", typed.Message())
	}
}

func TestCallMapsAuthAndNotFound(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/cart":
			w.Write([]byte(`{"status":401,"msg":"","data":null}`))
		default:
			w.Write([]byte(`{"status":404,"msg":"quotation not found","data":null}`))
		}
	})

	if _, err := client.FetchCart(context.Background()); !pkgerrors.IsCode(err, pkgerrors.CodeAuthRequired) {
		t.Fatalf("expected AUTH_REQUIRED, got %v", err)
	}
	if _, err := client.QuotationByID(context.Background(), 99); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestCallMapsTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // force connection refused

	client, err := NewClient(config.UpstreamConfig{BaseURL: srv.URL, Timeout: time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = client.FetchCart(context.Background())
	if !pkgerrors.IsCode(err, pkgerrors.CodeNetworkFailure) {
		t.Fatalf("expected NETWORK_FAILURE, got %v", err)
	}
}

func TestCallRejectsMalformedEnvelope(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway timeout</html>`))
	})

	_, err := client.FetchCart(context.Background())
	if !pkgerrors.IsCode(err, pkgerrors.CodeNetworkFailure) {
		t.Fatalf("expected NETWORK_FAILURE for undecodable body, got %v", err)
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(config.UpstreamConfig{}); err == nil {
		t.Fatal("expected error for empty base url")
	}
}
