package twse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetDailyQuotes_ParsesResponse(t *testing.T) {
	var capturedPath, capturedQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"stat":"OK","data":[["2330","TSMC","","1,000","","","","600.00","+10.00"]]}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	report, err := client.GetDailyQuotes(context.Background())
	if err != nil {
		t.Fatalf("GetDailyQuotes failed: %v", err)
	}

	if capturedPath != "/exchangeReport/MI_INDEX" {
		t.Errorf("expected path /exchangeReport/MI_INDEX, got %s", capturedPath)
	}
	if capturedQuery != "response=json&type=ALLBUT0999" {
		t.Errorf("unexpected query %s", capturedQuery)
	}
	if report.Stat != "OK" {
		t.Errorf("stat = %s, want OK", report.Stat)
	}
	if len(report.Data) != 1 {
		t.Fatalf("expected 1 row, got %d", len(report.Data))
	}
	if report.Data[0][0] != "2330" {
		t.Errorf("row code = %v, want 2330", report.Data[0][0])
	}
}

func TestGetDailyQuotes_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	if _, err := client.GetDailyQuotes(context.Background()); err == nil {
		t.Error("expected error for 503 response, got nil")
	}
}

func TestGetDailyQuotes_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>rate limited</html>`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	if _, err := client.GetDailyQuotes(context.Background()); err == nil {
		t.Error("expected decode error for HTML body, got nil")
	}
}
