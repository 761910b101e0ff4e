package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/yildizm/HomeQuote/internal/config"
	"github.com/yildizm/HomeQuote/internal/emoji"
	"github.com/yildizm/HomeQuote/internal/estimator"
	"github.com/yildizm/HomeQuote/internal/form"
	"github.com/yildizm/HomeQuote/internal/logger"
)

type stubEstimator struct {
	requests []estimator.Request
	err      error
}

func (s *stubEstimator) Locations(ctx context.Context) ([]string, error) {
	return []string{"Whitefield"}, nil
}

func (s *stubEstimator) Estimate(ctx context.Context, r estimator.Request) (*estimator.Estimate, error) {
	s.requests = append(s.requests, r)
	if s.err != nil {
		return nil, s.err
	}
	return &estimator.Estimate{Raw: 85.5, Price: 85.5 * estimator.PriceScale}, nil
}

func writeListing(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write listing: %v", err)
	}
}

func newTestWatcher(t *testing.T, client *stubEstimator) (*listingWatcher, *bytes.Buffer) {
	t.Helper()

	emoji.SetEmojiDisabled(true)
	t.Cleanup(func() { emoji.SetEmojiDisabled(false) })

	cfg := config.DefaultConfig()
	cfg.Output.ColorMode = "never"

	path := filepath.Join(t.TempDir(), "listing.yaml")
	var out bytes.Buffer
	return newListingWatcher(path, client, cfg, &out, logger.Nop()), &out
}

func TestLoadListing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listing.yaml")
	writeListing(t, path, "location: \" Electronic City \"\nbhk: 2\nbath: 3\nsqft: 1200.5\n")

	state, err := loadListing(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := form.State{Location: "Electronic City", BHK: "2", Bath: "3", Sqft: "1200.5"}
	if state != expected {
		t.Errorf("Expected %+v, got %+v", expected, state)
	}
}

func TestLoadListingErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := loadListing(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeListing(t, bad, "location: [unclosed\n")
	if _, err := loadListing(bad); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestListingWatcherSkipsUnchangedListing(t *testing.T) {
	client := &stubEstimator{}
	w, out := newTestWatcher(t, client)
	writeListing(t, w.path, "location: Whitefield\nbhk: 2\nbath: 2\nsqft: 1200\n")

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := w.evaluate(ctx); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}
	if len(client.requests) != 1 {
		t.Fatalf("Expected one request for identical inputs, got %d", len(client.requests))
	}
	if !strings.Contains(out.String(), "Estimated Price: ₹8550000") {
		t.Errorf("Expected estimate output, got:\n%s", out.String())
	}

	writeListing(t, w.path, "location: Whitefield\nbhk: 3\nbath: 2\nsqft: 1200\n")
	if err := w.evaluate(ctx); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(client.requests) != 2 {
		t.Fatalf("Expected a new request after a change, got %d", len(client.requests))
	}
	if client.requests[1].BHK != 3 {
		t.Errorf("Expected updated BHK 3, got %d", client.requests[1].BHK)
	}
}

func TestListingWatcherReportsFormErrors(t *testing.T) {
	client := &stubEstimator{}
	w, out := newTestWatcher(t, client)
	writeListing(t, w.path, "location: Whitefield\nbath: 2\nsqft: 1200\n")

	if err := w.evaluate(context.Background()); err != nil {
		t.Fatalf("Expected form errors to be printed, got %v", err)
	}
	if len(client.requests) != 0 {
		t.Errorf("Expected no request for an incomplete listing, got %d", len(client.requests))
	}
	if !strings.Contains(out.String(), form.MsgRequired) {
		t.Errorf("Expected %q in output, got:\n%s", form.MsgRequired, out.String())
	}
}

func TestListingWatcherRejectsNonNumericSqft(t *testing.T) {
	for _, sqft := range []string{"NaN", ".inf", "1e3"} {
		t.Run(sqft, func(t *testing.T) {
			client := &stubEstimator{}
			w, out := newTestWatcher(t, client)
			writeListing(t, w.path, "location: Whitefield\nbhk: 2\nbath: 2\nsqft: "+sqft+"\n")

			if err := w.evaluate(context.Background()); err != nil {
				t.Fatalf("Expected form errors to be printed, got %v", err)
			}
			if len(client.requests) != 0 {
				t.Errorf("Expected no request for sqft %q, got %d", sqft, len(client.requests))
			}
			if !strings.Contains(out.String(), "Total Sqft must be a number.") {
				t.Errorf("Expected sqft error in output, got:\n%s", out.String())
			}
		})
	}
}

func TestListingWatcherRetriesAfterServiceFailure(t *testing.T) {
	client := &stubEstimator{err: errors.New("connection refused")}
	w, out := newTestWatcher(t, client)
	writeListing(t, w.path, "location: Whitefield\nbhk: 2\nbath: 2\nsqft: 1200\n")

	ctx := context.Background()
	if err := w.evaluate(ctx); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out.String(), form.MsgSubmitFailed) {
		t.Errorf("Expected %q in output, got:\n%s", form.MsgSubmitFailed, out.String())
	}

	client.err = nil
	if err := w.evaluate(ctx); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(client.requests) != 2 {
		t.Errorf("Expected the same listing to be retried after a failure, got %d requests", len(client.requests))
	}
}

func TestListingWatcherRelevant(t *testing.T) {
	w, _ := newTestWatcher(t, &stubEstimator{})
	other := filepath.Join(filepath.Dir(w.path), "other.yaml")

	tests := []struct {
		name     string
		event    fsnotify.Event
		expected bool
	}{
		{"write to listing", fsnotify.Event{Name: w.path, Op: fsnotify.Write}, true},
		{"listing replaced", fsnotify.Event{Name: w.path, Op: fsnotify.Create}, true},
		{"chmod of listing", fsnotify.Event{Name: w.path, Op: fsnotify.Chmod}, false},
		{"write to other file", fsnotify.Event{Name: other, Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.relevant(tt.event); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestValidateListingPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "listing.yaml")
	writeListing(t, path, "location: Whitefield\n")

	got, err := validateListingPath(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("Expected absolute path, got %s", got)
	}

	for _, bad := range []string{"", "   ", dir, filepath.Join(dir, "missing.yaml")} {
		if _, err := validateListingPath(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}
