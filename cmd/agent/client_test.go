package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ViniAguiar1/llm-agent-runtime/pkg/request"
)

func TestRelayClientRun(t *testing.T) {
	var got request.ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/run" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"provider":"openai","model":"gpt-4o-mini","text":"done"}`))
	}))
	defer srv.Close()

	c := newRelayClient(srv.URL + "/")
	res, err := c.Run(context.Background(), &request.ChatRequest{Mode: request.ModeRefactor, Message: "fix"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Text != "done" || res.Model != "gpt-4o-mini" || res.Provider != "openai" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got.Mode != request.ModeRefactor || got.Message != "fix" {
		t.Fatalf("server received %+v", got)
	}
}

func TestRelayClientValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid payload","details":{"formErrors":[],"fieldErrors":{"message":["is required"]}}}`))
	}))
	defer srv.Close()

	_, err := newRelayClient(srv.URL).Run(context.Background(), &request.ChatRequest{})
	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *apiError, got %T (%v)", err, err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Reason != "invalid payload" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	if !strings.Contains(err.Error(), "message: is required") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestRelayClientUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"failed to call OpenAI","message":"completion: openai error 401: bad key"}`))
	}))
	defer srv.Close()

	_, err := newRelayClient(srv.URL).Run(context.Background(), &request.ChatRequest{Message: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	want := "relay returned 500: failed to call OpenAI: completion: openai error 401: bad key"
	if err.Error() != want {
		t.Fatalf("Error() = %q; want %q", err.Error(), want)
	}
}

func TestRelayClientNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newRelayClient(srv.URL).Health(context.Background())
	var apiErr *apiError
	if !errors.As(err, &apiErr) || apiErr.Message != "bad gateway" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRelayClientHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	status, err := newRelayClient(srv.URL).Health(context.Background())
	if err != nil || status != "ok" {
		t.Fatalf("Health() = %q, %v", status, err)
	}
}

func TestRelayClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newRelayClient(url).Health(context.Background())
	if err == nil || !strings.Contains(err.Error(), "contacting relay") {
		t.Fatalf("unexpected error: %v", err)
	}
}
