// Package youtube implements the video provider by scraping the YouTube
// results page and decoding the embedded ytInitialData blob.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/FranksOps/marketscope/internal/fingerprint"
	"github.com/FranksOps/marketscope/internal/provider"
	"github.com/FranksOps/marketscope/pkg/httpclient"
	"github.com/FranksOps/marketscope/pkg/ratelimit"
	"github.com/FranksOps/marketscope/pkg/useragent"
)

// DefaultBaseURL is the public YouTube host.
const DefaultBaseURL = "https://www.youtube.com"

var initialDataRe = regexp.MustCompile(`(?s)var ytInitialData\s*=\s*(\{.*?\});`)

// Client scrapes video results for a query.
type Client struct {
	baseURL string
	http    *httpclient.Client
	limiter *ratelimit.Limiter
	agents  *useragent.Pool
	profile fingerprint.Profile
}

var _ provider.VideoProvider = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client. The fingerprint
// profile is ignored when a client is supplied.
func WithHTTPClient(hc *httpclient.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLimiter sets a rate limiter applied before every request.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithFingerprint selects the TLS fingerprint used for outbound requests.
func WithFingerprint(p fingerprint.Profile) Option {
	return func(c *Client) { c.profile = p }
}

// New creates a video client. Requests present a browser TLS fingerprint
// and a rotating User-Agent; results pages served to non-browser clients
// omit the data blob we parse.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: DefaultBaseURL,
		agents:  useragent.NewPool(nil),
		profile: fingerprint.ProfileChrome,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		transport, err := fingerprint.Transport(c.profile, nil)
		if err != nil {
			return nil, fmt.Errorf("video client: %w", err)
		}
		hc, err := httpclient.New(httpclient.Config{
			UseCookieJar: true,
			Transport:    transport,
		})
		if err != nil {
			return nil, fmt.Errorf("video client: %w", err)
		}
		c.http = hc
	}
	return c, nil
}

// Videos scrapes the results page for query and returns up to limit items.
func (c *Client) Videos(ctx context.Context, query string, limit int) ([]provider.RawVideoItem, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	q := url.Values{}
	q.Set("search_query", query)

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/results?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("video request: %w", err)
	}
	req.Header.Set("User-Agent", c.agents.GetRandom())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("video request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("video request: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("video response: %w", err)
	}

	blob := findInitialData(doc)
	if blob == "" {
		return nil, fmt.Errorf("video response: no initial data blob found")
	}

	items, err := parseInitialData([]byte(blob))
	if err != nil {
		return nil, fmt.Errorf("video response: %w", err)
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// findInitialData scans script tags for the ytInitialData assignment.
func findInitialData(doc *goquery.Document) string {
	var blob string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if !strings.Contains(text, "ytInitialData") {
			return true
		}
		if m := initialDataRe.FindStringSubmatch(text); m != nil {
			blob = m[1]
			return false
		}
		return true
	})
	return blob
}

// The renderer structs mirror only the slice of ytInitialData we consume.
type initialData struct {
	Contents struct {
		TwoColumnSearchResultsRenderer struct {
			PrimaryContents struct {
				SectionListRenderer struct {
					Contents []struct {
						ItemSectionRenderer *struct {
							Contents []struct {
								VideoRenderer *videoRenderer `json:"videoRenderer"`
							} `json:"contents"`
						} `json:"itemSectionRenderer"`
					} `json:"contents"`
				} `json:"sectionListRenderer"`
			} `json:"primaryContents"`
		} `json:"twoColumnSearchResultsRenderer"`
	} `json:"contents"`
}

type textRuns struct {
	Runs []struct {
		Text string `json:"text"`
	} `json:"runs"`
	SimpleText string `json:"simpleText"`
}

func (t textRuns) String() string {
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var b strings.Builder
	for _, r := range t.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

type videoRenderer struct {
	VideoID            string   `json:"videoId"`
	Title              textRuns `json:"title"`
	OwnerText          textRuns `json:"ownerText"`
	DescriptionSnippet textRuns `json:"descriptionSnippet"`
	DetailedSnippets   []struct {
		SnippetText textRuns `json:"snippetText"`
	} `json:"detailedMetadataSnippets"`
	ViewCountText     textRuns `json:"viewCountText"`
	LengthText        textRuns `json:"lengthText"`
	PublishedTimeText textRuns `json:"publishedTimeText"`
}

// parseInitialData walks the search-results section of the blob and maps
// each video renderer to a raw item. Non-video renderers (ads, shelves,
// channels) are skipped.
func parseInitialData(blob []byte) ([]provider.RawVideoItem, error) {
	var data initialData
	if err := json.Unmarshal(blob, &data); err != nil {
		return nil, err
	}

	var items []provider.RawVideoItem
	sections := data.Contents.TwoColumnSearchResultsRenderer.PrimaryContents.SectionListRenderer.Contents
	for _, section := range sections {
		if section.ItemSectionRenderer == nil {
			continue
		}
		for _, entry := range section.ItemSectionRenderer.Contents {
			vr := entry.VideoRenderer
			if vr == nil || vr.VideoID == "" {
				continue
			}
			desc := vr.DescriptionSnippet.String()
			if desc == "" && len(vr.DetailedSnippets) > 0 {
				desc = vr.DetailedSnippets[0].SnippetText.String()
			}
			items = append(items, provider.RawVideoItem{
				Title:       vr.Title.String(),
				VideoID:     vr.VideoID,
				Channel:     vr.OwnerText.String(),
				Description: desc,
				Views:       vr.ViewCountText.String(),
				Duration:    vr.LengthText.String(),
				Published:   vr.PublishedTimeText.String(),
			})
		}
	}
	return items, nil
}
