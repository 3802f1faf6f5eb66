package candidate_test

import (
	"prober/pkg/candidate"
	"prober/pkg/domain"
	"prober/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

var targets = domain.Targets{ProjectID: "p1", ScreenID: "s1"} //nolint: gochecknoglobals

func TestBuild_CrossProductInBaseMajorOrder(t *testing.T) {
	got, err := candidate.Build(targets, candidate.Templates{
		StorageHost: "https://storage.googleapis.com/",
		Buckets:     []string{"a", "/b/"},
		Bases:       []string{"https://export.example/api/"},
		Paths:       []string{"/{project}/{screen}", "{project}/{screen}.zip"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://storage.googleapis.com/a/p1/s1",
		"https://storage.googleapis.com/a/p1/s1.zip",
		"https://storage.googleapis.com/b/p1/s1",
		"https://storage.googleapis.com/b/p1/s1.zip",
		"https://export.example/api/p1/s1",
		"https://export.example/api/p1/s1.zip",
	}, got)
}

func TestBuild_DeduplicatesNormalizedCandidates(t *testing.T) {
	got, err := candidate.Build(targets, candidate.Templates{
		StorageHost: "https://storage.googleapis.com",
		Buckets:     []string{"a"},
		Bases:       []string{"HTTPS://Storage.GoogleAPIs.com:443/a"},
		Paths:       []string{"/{project}/{screen}", "/{project}/{screen}/", "//{project}/{screen}"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"https://storage.googleapis.com/a/p1/s1"}, got)
}

func TestBuild_Errors(t *testing.T) {
	cases := []struct {
		name    string
		targets domain.Targets
		tpl     candidate.Templates
	}{
		{
			name:    "missing screen",
			targets: domain.Targets{ProjectID: "p1"},
			tpl:     candidate.DefaultTemplates(),
		},
		{
			name:    "buckets without storage host",
			targets: targets,
			tpl:     candidate.Templates{Buckets: []string{"a"}, Paths: []string{"/x"}},
		},
		{
			name:    "unknown placeholder",
			targets: targets,
			tpl:     candidate.Templates{Bases: []string{"https://a.example"}, Paths: []string{"/{project}/{variant}"}},
		},
		{
			name:    "relative base",
			targets: targets,
			tpl:     candidate.Templates{Bases: []string{"a.example"}, Paths: []string{"/{project}"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := candidate.Build(tc.targets, tc.tpl)
			require.ErrorIs(t, err, serrors.ErrBadRequest)
		})
	}
}

func TestBuild_EmptyTemplates(t *testing.T) {
	got, err := candidate.Build(targets, candidate.Templates{})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestBuild_Defaults(t *testing.T) {
	tpl := candidate.DefaultTemplates()
	got, err := candidate.Build(domain.Targets{
		ProjectID: "16763316819467624605",
		ScreenID:  "0a73768aa6b14d4e90b1de1c7dce16d9",
	}, tpl)
	require.NoError(t, err)

	bases := len(candidate.DefaultBuckets) + len(candidate.DefaultBases)
	require.Len(t, got, bases*len(candidate.DefaultPaths))
	require.Equal(t,
		"https://storage.googleapis.com/adash-export-prod/16763316819467624605/0a73768aa6b14d4e90b1de1c7dce16d9",
		got[0])
	require.Contains(t, got,
		"https://adash-export-prod.storage.googleapis.com/project_16763316819467624605/screen_0a73768aa6b14d4e90b1de1c7dce16d9.zip")

	// callers may mutate the returned templates freely
	tpl.Buckets[0] = "changed"
	require.Equal(t, "adash-export-prod", candidate.DefaultBuckets[0])
}
