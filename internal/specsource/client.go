// Package specsource talks to the external phone-specs API: a read-only
// catalog of brands, per-brand phone listings and per-phone detail pages
// with deeply nested, inconsistently keyed specification groups.
package specsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type Client struct {
	BaseURL  string
	Client   *http.Client
	MaxPages int // per-brand pagination safety cap
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:  baseURL,
		Client:   &http.Client{Timeout: 15 * time.Second},
		MaxPages: 10,
	}
}

type Brand struct {
	BrandName string `json:"brand_name"`
	BrandSlug string `json:"brand_slug"`
	Detail    string `json:"detail"`
}

type PhoneSummary struct {
	PhoneName string `json:"phone_name"`
	Slug      string `json:"slug"`
	Detail    string `json:"detail"`
}

type SpecEntry struct {
	Key string   `json:"key"`
	Val []string `json:"val"`
}

type SpecGroup struct {
	Title string      `json:"title"`
	Specs []SpecEntry `json:"specs"`
}

type PhoneDetail struct {
	Brand          string      `json:"brand"`
	PhoneName      string      `json:"phone_name"`
	ReleaseDate    string      `json:"release_date"`
	Dimension      string      `json:"dimension"`
	OS             string      `json:"os"`
	Storage        string      `json:"storage"`
	Specifications []SpecGroup `json:"specifications"`
}

type brandsResponse struct {
	Status bool    `json:"status"`
	Data   []Brand `json:"data"`
}

type phonesResponse struct {
	Status bool `json:"status"`
	Data   struct {
		Phones      []PhoneSummary `json:"phones"`
		CurrentPage int            `json:"current_page"`
		LastPage    int            `json:"last_page"`
	} `json:"data"`
}

type detailResponse struct {
	Status bool        `json:"status"`
	Data   PhoneDetail `json:"data"`
}

// ListBrands fetches every brand known to the specs API.
func (c *Client) ListBrands(ctx context.Context) ([]Brand, error) {
	var out brandsResponse
	if err := c.getJSON(ctx, c.BaseURL+"/brands", &out); err != nil {
		return nil, fmt.Errorf("specs api: brands: %w", err)
	}
	if !out.Status {
		return nil, fmt.Errorf("specs api: brands: upstream status false")
	}
	return out.Data, nil
}

// ListPhones fetches every phone of a brand, following pagination up to
// the MaxPages cap.
func (c *Client) ListPhones(ctx context.Context, brandSlug string) ([]PhoneSummary, error) {
	var all []PhoneSummary

	for page := 1; page <= c.MaxPages; page++ {
		u, err := url.Parse(c.BaseURL + "/brands/" + url.PathEscape(brandSlug))
		if err != nil {
			return nil, fmt.Errorf("specs api: phones: build url: %w", err)
		}
		q := u.Query()
		q.Set("page", strconv.Itoa(page))
		u.RawQuery = q.Encode()

		var out phonesResponse
		if err := c.getJSON(ctx, u.String(), &out); err != nil {
			return nil, fmt.Errorf("specs api: phones %s: %w", brandSlug, err)
		}
		if !out.Status {
			return nil, fmt.Errorf("specs api: phones %s: upstream status false", brandSlug)
		}

		all = append(all, out.Data.Phones...)
		if len(out.Data.Phones) == 0 || out.Data.CurrentPage >= out.Data.LastPage {
			break
		}
	}

	return all, nil
}

// GetPhoneDetail fetches the full specification sheet for one phone.
// The detail URL comes verbatim from a PhoneSummary.
func (c *Client) GetPhoneDetail(ctx context.Context, detailURL string) (*PhoneDetail, error) {
	var out detailResponse
	if err := c.getJSON(ctx, detailURL, &out); err != nil {
		return nil, fmt.Errorf("specs api: detail: %w", err)
	}
	if !out.Status {
		return nil, fmt.Errorf("specs api: detail: upstream status false")
	}
	return &out.Data, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
