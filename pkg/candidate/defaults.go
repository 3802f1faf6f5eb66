package candidate

// DefaultStorageHost is the public Cloud Storage endpoint buckets are served from.
const DefaultStorageHost = "https://storage.googleapis.com"

// DefaultBuckets are bucket names guessed for export artifacts.
//
//nolint: gochecknoglobals
var DefaultBuckets = []string{
	"adash-export-prod", "adash-exports", "adash-export",
	"stitch-artifacts", "stitch-artifacts-prod",
	"stitch-exports", "stitch-exports-prod",
	"stitch-export", "stitch-export-prod",
	"idx-stitch-artifacts", "idx-stitch-exports",
	"stitch-prod-artifacts", "stitch-prod-exports",
	"stitch", "adash", "stitch-app", "stitch-code",
	"makani-artifacts", "makani-exports",
}

// DefaultBases are base URLs that are not plain bucket paths on DefaultStorageHost.
//
//nolint: gochecknoglobals
var DefaultBases = []string{
	"https://stitch.google.com/api/export",
	"https://adash-export-prod.storage.googleapis.com",
}

// DefaultPaths are the path layouts tried under every base.
//
//nolint: gochecknoglobals
var DefaultPaths = []string{
	"/{project}/{screen}",
	"/{project}/{screen}/index.html",
	"/{project}/{screen}.zip",
	"/{project}/screens/{screen}",
	"/{project}/screens/{screen}/index.html",
	"/{project}/screens/{screen}.zip",
	"/project_{project}/screen_{screen}.zip",
}

// DefaultTemplates returns a copy of the built-in templates.
func DefaultTemplates() Templates {
	return Templates{
		StorageHost: DefaultStorageHost,
		Buckets:     append([]string(nil), DefaultBuckets...),
		Bases:       append([]string(nil), DefaultBases...),
		Paths:       append([]string(nil), DefaultPaths...),
	}
}
