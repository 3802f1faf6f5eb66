package candidate_test

import (
	"prober/pkg/candidate"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
		ok   bool
	}{
		{
			name: "lowercase scheme and host; add root path",
			in:   "HTTPS://Storage.GoogleAPIs.com",
			out:  "https://storage.googleapis.com/",
			ok:   true,
		},
		{
			name: "path case is preserved",
			in:   "https://storage.googleapis.com/Bucket/ABC.zip",
			out:  "https://storage.googleapis.com/Bucket/ABC.zip",
			ok:   true,
		},
		{
			name: "remove default https port",
			in:   "https://storage.googleapis.com:443/b/x",
			out:  "https://storage.googleapis.com/b/x",
			ok:   true,
		},
		{
			name: "keep non-default port",
			in:   "http://127.0.0.1:8080/b/x",
			out:  "http://127.0.0.1:8080/b/x",
			ok:   true,
		},
		{
			name: "collapse duplicate slashes from an empty template segment",
			in:   "https://storage.googleapis.com/bucket//1/2/",
			out:  "https://storage.googleapis.com/bucket/1/2",
			ok:   true,
		},
		{
			name: "sort query keys and values",
			in:   "https://example.com/path?b=2&a=2&a=1",
			out:  "https://example.com/path?a=1&a=2&b=2",
			ok:   true,
		},
		{
			name: "remove fragment",
			in:   "https://example.com/path#frag",
			out:  "https://example.com/path",
			ok:   true,
		},
		{
			name: "ipv6 host with port",
			in:   "http://[2001:db8::1]:8080/a",
			out:  "http://[2001:db8::1]:8080/a",
			ok:   true,
		},
		{
			name: "invalid host",
			in:   "http://exa mple.com",
			ok:   false,
		},
		{
			name: "relative URL",
			in:   "/1/2/index.html",
			ok:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := candidate.NormalizeURL(tc.in)
			if !tc.ok {
				require.Error(t, err, "result %q", got)

				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.out, got)
		})
	}
}
