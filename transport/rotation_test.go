package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPostSucceedsOnFirstEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	tr, err := NewRotationTransport([]string{srv.URL}, nil)
	if err != nil {
		t.Fatalf("NewRotationTransport: %v", err)
	}

	resp, err := tr.Post(context.Background(), "application/json", []byte("{}"))
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if string(resp) != "ok" {
		t.Fatalf("Post response = %q, want %q", resp, "ok")
	}
}

func TestPostRotatesToSecondEndpointOnFailure(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer dead.Close()

	alive := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("alive"))
	}))
	defer alive.Close()

	tr, err := NewRotationTransport([]string{dead.URL, alive.URL}, nil)
	if err != nil {
		t.Fatalf("NewRotationTransport: %v", err)
	}

	resp, err := tr.Post(context.Background(), "application/json", []byte("{}"))
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if string(resp) != "alive" {
		t.Fatalf("Post response = %q, want %q", resp, "alive")
	}
}

func TestPostFailsWhenAllEndpointsDeadOnFirstCycle(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer dead.Close()

	tr, err := NewRotationTransport([]string{dead.URL}, nil)
	if err != nil {
		t.Fatalf("NewRotationTransport: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := tr.Post(ctx, "application/json", []byte("{}")); err == nil {
		t.Fatal("expected Post to fail when the only endpoint never succeeds")
	}
}

func TestNewRotationTransportRejectsEmptyEndpointList(t *testing.T) {
	if _, err := NewRotationTransport(nil, nil); err == nil {
		t.Fatal("expected error for empty endpoint list")
	}
}
