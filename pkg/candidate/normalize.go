package candidate

import (
	"fmt"
	"net"
	"net/url"
	"path"
	"sort"
	"strings"
)

// NormalizeURL returns a canonical representation of a candidate URL so that
// templates producing the same location are probed only once:
//   - lower-case scheme and host
//   - empty path becomes "/"
//   - dot-segments and duplicate slashes are removed from the path
//   - trailing slash is removed (except for the root path)
//   - default ports (http:80, https:443) are dropped
//   - query parameters are sorted by key and value
//   - the fragment is removed
//
// URLs without a scheme or host are rejected since they cannot be probed.
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("could not parse URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("URL %q is not absolute", raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)

	if u.Path == "" {
		u.Path = "/"
	}
	cleaned := path.Clean(u.Path)
	if !strings.HasPrefix(cleaned, "/") {
		cleaned = "/" + cleaned
	}
	u.Path = cleaned
	u.RawPath = ""

	host := strings.ToLower(u.Host)
	port := ""
	if ph, pp, err := net.SplitHostPort(host); err == nil {
		host, port = ph, pp
	}
	switch {
	case port == "":
		u.Host = host
	case (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443"):
		u.Host = host
	default:
		u.Host = net.JoinHostPort(host, port)
	}

	if u.RawQuery != "" {
		q := u.Query()
		for k := range q {
			sort.Strings(q[k])
		}
		u.RawQuery = q.Encode()
	}

	u.Fragment = ""

	return u.String(), nil
}
