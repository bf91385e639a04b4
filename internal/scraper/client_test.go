package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	apperrors "fundsync/internal/errors"
	"fundsync/internal/testutil"
)

const testUA = "fundsync-test/1.0"

func TestClient_FetchReport(t *testing.T) {
	page, err := os.ReadFile(filepath.Join("testdata", "report_tab01.html"))
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}

	var gotPath, gotTab, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotTab = r.URL.Query().Get("tab")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write(page)
	}))
	defer server.Close()

	c := NewClient(server.Client(), server.URL, testUA)
	doc, err := c.FetchReport(context.Background(), "04")
	testutil.AssertNoError(t, err)

	if gotPath != "/aum_report.php" || gotTab != "04" {
		t.Errorf("requested %s?tab=%s", gotPath, gotTab)
	}
	if gotUA != testUA {
		t.Errorf("User-Agent = %q, want %q", gotUA, testUA)
	}
	if doc.Find("table.mydata").Length() != 1 {
		t.Error("expected the report table in the parsed document")
	}
}

func TestClient_FetchMarketCapDetail(t *testing.T) {
	var gotPath, gotCode string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCode = r.URL.Query().Get("Fund_Code")
		_, _ = w.Write([]byte("<html><body></body></html>"))
	}))
	defer server.Close()

	c := NewClient(server.Client(), server.URL, testUA)
	_, err := c.FetchMarketCapDetail(context.Background(), 5501)
	testutil.AssertNoError(t, err)

	if gotPath != "/AUMs_report.php" || gotCode != "5501" {
		t.Errorf("requested %s?Fund_Code=%s", gotPath, gotCode)
	}
}

func TestClient_FetchFailures(t *testing.T) {
	t.Run("non_200_status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		c := NewClient(server.Client(), server.URL, testUA)
		_, err := c.FetchReport(context.Background(), "01")
		testutil.AssertAppError(t, err, apperrors.ErrFetchFailed.Code)
	})

	t.Run("connection_refused", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		url := server.URL
		server.Close()

		c := NewClient(http.DefaultClient, url, testUA)
		_, err := c.FetchReport(context.Background(), "01")
		testutil.AssertAppError(t, err, apperrors.ErrFetchFailed.Code)
	})

	t.Run("cancelled_context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := NewClient(server.Client(), server.URL, testUA)
		_, err := c.FetchReport(ctx, "01")
		testutil.AssertAppError(t, err, apperrors.ErrFetchFailed.Code)
	})
}
