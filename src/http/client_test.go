package http

import (
	"context"
	"errors"
	"testing"
)

func TestMockHTTPClient_SetResponse(t *testing.T) {
	client := NewMockHTTPClient()
	client.SetResponse("http://example.com", &Response{
		StatusCode: 200,
		Body:       []byte("hello"),
	})

	resp, err := client.Get(context.Background(), "http://example.com")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if string(resp.Body) != "hello" {
		t.Errorf("Body = %q, want %q", resp.Body, "hello")
	}
}

func TestMockHTTPClient_SetError(t *testing.T) {
	client := NewMockHTTPClient()
	boom := errors.New("connection reset")
	client.SetError("http://example.com", boom)

	_, err := client.Get(context.Background(), "http://example.com")
	if !errors.Is(err, boom) {
		t.Errorf("Get() error = %v, want %v", err, boom)
	}
}

func TestMockHTTPClient_UnconfiguredURL(t *testing.T) {
	client := NewMockHTTPClient()
	if _, err := client.Get(context.Background(), "http://unset.example.com"); err == nil {
		t.Error("Get() error = nil, want error for unconfigured URL")
	}
}

func TestMockHTTPClient_RecordsCalls(t *testing.T) {
	client := NewMockHTTPClient()
	client.SetResponse("http://a.example.com", &Response{StatusCode: 200})
	client.SetResponse("http://b.example.com", &Response{StatusCode: 200})

	client.Get(context.Background(), "http://a.example.com")
	client.Get(context.Background(), "http://b.example.com")
	client.Get(context.Background(), "http://a.example.com")

	calls := client.GetCalls()
	if len(calls) != 3 {
		t.Fatalf("GetCalls() returned %d calls, want 3", len(calls))
	}
	if calls[0] != "http://a.example.com" || calls[2] != "http://a.example.com" {
		t.Errorf("GetCalls() = %v, call order not preserved", calls)
	}
}
