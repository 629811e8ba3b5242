// internal/browser/cookies.go
package browser

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	json "github.com/json-iterator/go"
)

// Cookie is one entry of a saved cookie file. The field names follow what
// browser automation tools write when they export a logged-in context.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"sameSite"`
}

// storageState is the object form of a cookie file: {"cookies": [...], ...}.
type storageState struct {
	Cookies []Cookie `json:"cookies"`
}

// LoadCookies reads a cookie file. Both a bare JSON array of cookies and a
// storage-state object holding a "cookies" array are accepted.
func LoadCookies(path string) ([]Cookie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCookies(data)
}

// ParseCookies decodes cookie file contents.
func ParseCookies(data []byte) ([]Cookie, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '{' {
		var state storageState
		if err := json.Unmarshal(data, &state); err != nil {
			return nil, fmt.Errorf("invalid cookie file: %w", err)
		}
		return state.Cookies, nil
	}

	var cookies []Cookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return nil, fmt.Errorf("invalid cookie file: %w", err)
	}
	return cookies, nil
}

// CookieParams converts saved cookies into CDP parameters. Entries without a
// name are dropped; a non-positive expiry marks a session cookie.
func CookieParams(cookies []Cookie) []*network.CookieParam {
	params := make([]*network.CookieParam, 0, len(cookies))
	for _, c := range cookies {
		if c.Name == "" {
			continue
		}
		p := &network.CookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
			SameSite: sameSite(c.SameSite),
		}
		if p.Path == "" {
			p.Path = "/"
		}
		if c.Expires > 0 {
			sec, frac := math.Modf(c.Expires)
			expires := cdp.TimeSinceEpoch(time.Unix(int64(sec), int64(frac*1e9)))
			p.Expires = &expires
		}
		params = append(params, p)
	}
	return params
}

func sameSite(v string) network.CookieSameSite {
	switch strings.ToLower(v) {
	case "strict":
		return network.CookieSameSiteStrict
	case "lax":
		return network.CookieSameSiteLax
	case "none":
		return network.CookieSameSiteNone
	default:
		return ""
	}
}
