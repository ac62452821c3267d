package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

const aggregationsBody = `{
  "aggregations": [
    {"selectors": {
      "Bundle Description": "Standard (2 vCPU, 4GB RAM)",
      "rootVolume": "80 GB",
      "userVolume": "50 GB",
      "Operating System": "Windows",
      "License": "Included",
      "Running Mode": "AutoStop",
      "Product Family": "WorkSpaces Core",
      "vCPU": "2",
      "Memory": "4 GB"
    }},
    {"selectors": {
      "Bundle": "Value (1 vCPU, 2GB RAM)",
      "Operating System": "Windows",
      "License": "Included"
    }},
    {"selectors": {"rootVolume": "80 GB"}}
  ]
}`

const priceIndexBody = `{
  "regions": {
    "us-east-1": {
      "Standard AutoStop": {"price": "0.43", "Unit": "hour", "rateCode": "ABC123"},
      "Standard Storage": {"price": "7.25", "Unit": "month", "rateCode": "DEF456"}
    }
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewHTTPClient(ts.URL, 0, zerolog.Nop())
}

func TestHTTPClient_FetchEntries(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/us-east-1/aggregations" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(aggregationsBody))
	})

	entries, err := c.FetchEntries(context.Background(), "us-east-1")
	if err != nil {
		t.Fatalf("FetchEntries() error = %v", err)
	}

	// The selector tuple without any bundle key is dropped.
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].BundleDescription != "Standard (2 vCPU, 4GB RAM)" {
		t.Errorf("entry[0] description = %q", entries[0].BundleDescription)
	}
	if entries[0].RootVolume != "80 GB" || entries[0].License != "Included" {
		t.Errorf("entry[0] selectors not mapped: %+v", entries[0])
	}
	// "Bundle" is accepted when "Bundle Description" is absent.
	if entries[1].BundleDescription != "Value (1 vCPU, 2GB RAM)" {
		t.Errorf("entry[1] description = %q", entries[1].BundleDescription)
	}
}

func TestHTTPClient_FetchEntries_BadStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	if _, err := c.FetchEntries(context.Background(), "us-east-1"); err == nil {
		t.Fatal("FetchEntries() expected error for bad status")
	}
}

func TestHTTPClient_FetchPrices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/us-east-1/index" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("bundle"); got != "Standard (2 vCPU, 4GB RAM)" {
			t.Errorf("bundle query = %q", got)
		}
		_, _ = w.Write([]byte(priceIndexBody))
	})

	lines, err := c.FetchPrices(context.Background(), "us-east-1", Entry{
		BundleDescription: "Standard (2 vCPU, 4GB RAM)",
		OperatingSystem:   "Windows",
	})
	if err != nil {
		t.Fatalf("FetchPrices() error = %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
}

func TestHTTPClient_FetchPrices_StableLineOrder(t *testing.T) {
	// Two hourly lines at different prices: callers pick the first usable
	// line, so the order must not depend on map iteration.
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"regions": {"us-east-1": {
			"Standard AutoStop B": {"price": "0.51", "Unit": "hour", "rateCode": "B"},
			"Standard AutoStop A": {"price": "0.43", "Unit": "hour", "rateCode": "A"}}}}`))
	})

	for i := 0; i < 5; i++ {
		lines, err := c.FetchPrices(context.Background(), "us-east-1", Entry{BundleDescription: "Standard"})
		if err != nil {
			t.Fatalf("FetchPrices() error = %v", err)
		}
		if len(lines) != 2 {
			t.Fatalf("len(lines) = %d, want 2", len(lines))
		}
		if lines[0].RateCode != "A" || lines[1].RateCode != "B" {
			t.Fatalf("lines out of key order: %+v", lines)
		}
	}
}

func TestHTTPClient_FetchPrices_SingleRegionFallback(t *testing.T) {
	// Responses keyed by display name still resolve when only one region
	// is present.
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"regions": {"US East (N. Virginia)": {
			"line": {"price": "0.43", "Unit": "hour", "rateCode": "X"}}}}`))
	})

	lines, err := c.FetchPrices(context.Background(), "us-east-1", Entry{BundleDescription: "Standard"})
	if err != nil {
		t.Fatalf("FetchPrices() error = %v", err)
	}
	if len(lines) != 1 || lines[0].Price != "0.43" {
		t.Errorf("lines = %+v", lines)
	}
}

func TestHTTPClient_FetchPrices_NoRegion(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"regions": {}}`))
	})

	if _, err := c.FetchPrices(context.Background(), "us-east-1", Entry{BundleDescription: "Standard"}); err == nil {
		t.Fatal("FetchPrices() expected error for empty region map")
	}
}
