// Package scraper fetches the fund association's report pages and turns
// their HTML into typed values. Nothing here touches the store.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	apperrors "fundsync/internal/errors"
	"fundsync/internal/models"
)

const (
	reportPath = "/aum_report.php"
	detailPath = "/AUMs_report.php"
)

// Client fetches report and detail pages from the source site.
type Client struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	userAgent  string
}

// NewClient creates a new source site client.
func NewClient(httpClient *http.Client, baseURL, userAgent string) *Client {
	return &Client{httpClient: httpClient, baseURL: baseURL, userAgent: userAgent}
}

// FetchReport fetches the AUM report page for one fund-type tab ("01".."05").
func (c *Client) FetchReport(ctx context.Context, tab string) (*goquery.Document, error) {
	return c.fetchDocument(ctx, reportPath, url.Values{"tab": {tab}})
}

// FetchMarketCapDetail fetches a fund's asset breakdown page by market-cap code.
func (c *Client) FetchMarketCapDetail(ctx context.Context, code int64) (*goquery.Document, error) {
	return c.fetchDocument(ctx, detailPath, url.Values{"Fund_Code": {strconv.FormatInt(code, 10)}})
}

func (c *Client) fetchDocument(ctx context.Context, path string, query url.Values) (*goquery.Document, error) {
	target := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFetchFailed, fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFetchFailed, fmt.Errorf("http request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Wrap(apperrors.ErrFetchFailed, fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFetchFailed, fmt.Errorf("parse HTML: %w", err))
	}
	return doc, nil
}

// FetchMarketCapFigures fetches and parses a fund's asset breakdown page.
func (c *Client) FetchMarketCapFigures(ctx context.Context, code int64) (*models.MarketCapFigures, error) {
	doc, err := c.FetchMarketCapDetail(ctx, code)
	if err != nil {
		return nil, err
	}
	return ParseMarketCapDetail(doc)
}
