package trusted

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Client fetches headlines from a trusted news page. The page is plain
// HTML; headlines are the text of its <h3> elements.
type Client struct {
	url   string
	limit int
	http  *http.Client
}

func NewClient(url string, limit int, timeout time.Duration) *Client {
	if limit <= 0 {
		limit = 10
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{url: url, limit: limit, http: &http.Client{Timeout: timeout}}
}

var (
	h3RE  = regexp.MustCompile(`(?is)<h3[^>]*>(.*?)</h3>`)
	tagRE = regexp.MustCompile(`(?s)<[^>]*>`)
)

// Headlines fetches the page and returns up to limit headline texts in page
// order.
func (c *Client) Headlines(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: status=%d", c.url, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.url, err)
	}

	var out []string
	for _, m := range h3RE.FindAllStringSubmatch(string(body), -1) {
		text := strings.TrimSpace(html.UnescapeString(tagRE.ReplaceAllString(m[1], "")))
		if text == "" {
			continue
		}
		out = append(out, text)
		if len(out) >= c.limit {
			break
		}
	}
	return out, nil
}
