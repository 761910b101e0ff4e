package estimator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := DefaultConfig()
	config.BaseURL = server.URL

	client, err := New(config, nil)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

func TestNew_InvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.Timeout = 0

	if _, err := New(config, nil); err == nil {
		t.Error("Expected error for zero timeout")
	}

	config = DefaultConfig()
	config.BaseURL = ""
	if _, err := New(config, nil); err == nil {
		t.Error("Expected error for empty base URL")
	}
}

func TestClient_Locations(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get-location-names" {
			t.Errorf("Expected path '/get-location-names', got '%s'", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET method, got '%s'", r.Method)
		}
		if r.URL.RawQuery != "" {
			t.Errorf("Expected no query parameters, got '%s'", r.URL.RawQuery)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"locations": ["Whitefield", "Indiranagar"]}`))
	})

	locations, err := client.Locations(context.Background())
	if err != nil {
		t.Fatalf("Failed to load locations: %v", err)
	}

	if len(locations) != 2 || locations[0] != "Whitefield" || locations[1] != "Indiranagar" {
		t.Errorf("Expected [Whitefield Indiranagar], got %v", locations)
	}
}

func TestClient_LocationsMissingField(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "absent", body: `{}`},
		{name: "null", body: `{"locations": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			locations, err := client.Locations(context.Background())
			if err != nil {
				t.Fatalf("Expected missing field to be tolerated, got %v", err)
			}
			if locations == nil || len(locations) != 0 {
				t.Errorf("Expected empty non-nil list, got %#v", locations)
			}
		})
	}
}

func TestClient_LocationsFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		errType *Error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"down"}`, errType: ErrStatus},
		{name: "not found", status: http.StatusNotFound, body: ``, errType: ErrStatus},
		{name: "malformed body", status: http.StatusOK, body: `<html>`, errType: ErrDecode},
		{name: "wrong shape", status: http.StatusOK, body: `{"locations": "Whitefield"}`, errType: ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Locations(context.Background())
			if !errors.Is(err, tt.errType) {
				t.Fatalf("Expected %s error, got %v", tt.errType.Type, err)
			}
		})
	}
}

func TestClient_Estimate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get-estimated-price" {
			t.Errorf("Expected path '/get-estimated-price', got '%s'", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST method, got '%s'", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Expected form content type, got '%s'", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("Failed to parse form: %v", err)
		}

		expected := map[string]string{
			"location": "Whitefield",
			"bhk":      "2",
			"bath":     "2",
			"sqft":     "1200",
		}
		for key, want := range expected {
			if got := r.PostForm.Get(key); got != want {
				t.Errorf("Expected form field %s=%s, got %s", key, want, got)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]float64{"estimated_price": 85.5})
	})

	estimate, err := client.Estimate(context.Background(), Request{
		Location: "Whitefield",
		BHK:      2,
		Bath:     2,
		Sqft:     1200,
	})
	if err != nil {
		t.Fatalf("Failed to estimate: %v", err)
	}

	if estimate.Raw != 85.5 {
		t.Errorf("Expected raw price 85.5, got %v", estimate.Raw)
	}
	if estimate.Price != 8550000 {
		t.Errorf("Expected price 8550000, got %v", estimate.Price)
	}
}

func TestClient_EstimateZeroIsValid(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"estimated_price": 0}`))
	})

	estimate, err := client.Estimate(context.Background(), Request{Location: "Whitefield", BHK: 1, Bath: 1, Sqft: 1})
	if err != nil {
		t.Fatalf("Expected zero price to be accepted, got %v", err)
	}
	if estimate.Price != 0 {
		t.Errorf("Expected price 0, got %v", estimate.Price)
	}
}

func TestClient_EstimateFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		errType *Error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `Internal Server Error`, errType: ErrStatus},
		{name: "bad request", status: http.StatusBadRequest, body: `{}`, errType: ErrStatus},
		{name: "malformed body", status: http.StatusOK, body: `not json`, errType: ErrDecode},
		{name: "empty body", status: http.StatusOK, body: ``, errType: ErrDecode},
		{name: "missing field", status: http.StatusOK, body: `{"price": 10}`, errType: ErrMissingField},
		{name: "null field", status: http.StatusOK, body: `{"estimated_price": null}`, errType: ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			estimate, err := client.Estimate(context.Background(), Request{Location: "Whitefield", BHK: 2, Bath: 2, Sqft: 1200})
			if estimate != nil {
				t.Errorf("Expected no estimate, got %+v", estimate)
			}
			if !errors.Is(err, tt.errType) {
				t.Fatalf("Expected %s error, got %v", tt.errType.Type, err)
			}
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	config := DefaultConfig()
	config.BaseURL = server.URL
	server.Close()

	client, err := New(config, nil)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	_, err = client.Locations(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("Expected network error, got %v", err)
	}

	var estErr *Error
	if !errors.As(err, &estErr) || estErr.Endpoint == "" {
		t.Errorf("Expected endpoint on error, got %+v", estErr)
	}
}

func TestClient_Timeout(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	client.client.Timeout = 50 * time.Millisecond

	_, err := client.Estimate(context.Background(), Request{Location: "Whitefield", BHK: 2, Bath: 2, Sqft: 1200})
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("Expected network error on timeout, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("Expected exactly one request, got %d", calls.Load())
	}
}

func TestRequestValues(t *testing.T) {
	values := Request{Location: "Electronic City Phase II", BHK: 3, Bath: 2, Sqft: 1450.5}.Values()

	if got := values.Encode(); got != "bath=2&bhk=3&location=Electronic+City+Phase+II&sqft=1450.5" {
		t.Errorf("Unexpected encoding: %s", got)
	}
}

func TestErrorString(t *testing.T) {
	err := newStatusError("http://127.0.0.1:5000/get-estimated-price", 502)

	want := "type=status: endpoint=http://127.0.0.1:5000/get-estimated-price: status=502: request failed with status 502"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
}
