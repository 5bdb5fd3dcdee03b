package tablecheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/example/wharf-watcher/internal/availability"
)

// Client is a minimal TableCheck client for one run. The reservation flow is
// the one the shop's reserve page uses from the browser: fetch the page once
// to obtain session cookies and the Rails CSRF meta token, then query the
// timetable endpoint with that token.
type Client struct {
	hc    *http.Client
	token string
}

const (
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/142.0.0.0 Safari/537.36"
	acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9," +
		"image/avif,image/webp,image/apng,*/*;q=0.8"
	acceptJSON     = "application/json, text/javascript, */*; q=0.01"
	acceptLanguage = "ja,en;q=0.9,en-US;q=0.8"

	requestTimeout = 10 * time.Second
)

// NewSession fetches the reserve page, keeping any session cookies, and
// extracts the CSRF token from <meta name="csrf-token" content="...">.
// The server rejects obviously automated clients, so browser-like headers
// are sent.
func NewSession(ctx context.Context, reserveURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	hc := &http.Client{Timeout: requestTimeout, Jar: jar}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reserveURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHTML)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch reserve page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: reserveURL, Code: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse reserve page: %w", err)
	}
	token, ok := doc.Find(`meta[name="csrf-token"]`).Attr("content")
	if !ok || token == "" {
		return nil, fmt.Errorf("%s: %w", reserveURL, ErrTokenNotFound)
	}

	return &Client{hc: hc, token: token}, nil
}

// Token returns the CSRF token extracted from the reserve page.
func (c *Client) Token() string { return c.token }

// TimetableURL derives the availability endpoint from the reserve page URL:
// /ja/shops/{shop-id}/reserve -> /ja/shops/{shop-id}/available/timetable.
func TimetableURL(reserveURL string) (string, error) {
	u, err := url.Parse(reserveURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}
	parts := strings.Split(u.Path, "/")
	for i, p := range parts {
		if p == "shops" && i+1 < len(parts) && parts[i+1] != "" {
			return fmt.Sprintf("%s://%s/ja/shops/%s/available/timetable", u.Scheme, u.Host, parts[i+1]), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrMalformedURL, u.Path)
}

// FetchTimetable queries the timetable endpoint for one seat category on one
// date. The CSRF token rides both as the authenticity_token query parameter
// and the X-CSRF-Token header; the API has been observed to want the referer
// of the reserve page as well.
func (c *Client) FetchTimetable(ctx context.Context, timetableURL, targetDate, serviceCategory string, partySize int, refererURL string) (availability.Timetable, error) {
	var tt availability.Timetable

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, timetableURL, nil)
	if err != nil {
		return tt, err
	}

	q := req.URL.Query()
	q.Set("authenticity_token", c.token)
	q.Set("reservation[num_people_adult]", strconv.Itoa(partySize))
	q.Set("reservation[service_category]", serviceCategory)
	q.Set("reservation[start_date]", targetDate)
	req.URL.RawQuery = q.Encode()

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptJSON)
	req.Header.Set("Accept-Language", acceptLanguage)
	req.Header.Set("Referer", refererURL)
	req.Header.Set("X-CSRF-Token", c.token)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := c.hc.Do(req)
	if err != nil {
		return tt, fmt.Errorf("fetch timetable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return tt, &StatusError{URL: timetableURL, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return tt, fmt.Errorf("read timetable response: %w", err)
	}
	if err := json.Unmarshal(body, &tt); err != nil {
		return tt, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return tt, nil
}
