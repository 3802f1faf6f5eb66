// Package candidate enumerates the URLs that may host an exported artifact.
// Candidates are the cross product of base URLs (a storage host joined with a
// bucket name, or an explicit base) and path templates filled in with the
// project and screen identifiers.
package candidate

import (
	"prober/pkg/domain"
	"prober/pkg/serrors"
	"strings"
)

const (
	// ProjectPlaceholder is replaced by the project identifier in path templates.
	ProjectPlaceholder = "{project}"
	// ScreenPlaceholder is replaced by the screen identifier in path templates.
	ScreenPlaceholder = "{screen}"
)

// Templates describes how candidate URLs are assembled.
type Templates struct {
	// StorageHost is prefixed to every bucket, e.g. "https://storage.googleapis.com".
	StorageHost string
	// Buckets are joined to StorageHost to form bases.
	Buckets []string
	// Bases are complete base URLs used as-is, after the bucket bases.
	Bases []string
	// Paths are appended to every base after placeholder substitution.
	Paths []string
}

// Build returns the candidate URLs for targets, ordered base-major (all paths
// of the first base, then all paths of the second, ...). Candidates are
// normalized and duplicates are dropped, keeping the first occurrence.
func Build(targets domain.Targets, tpl Templates) ([]string, error) {
	if targets.ProjectID == "" || targets.ScreenID == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "project and screen identifiers are required")
	}

	bases := make([]string, 0, len(tpl.Buckets)+len(tpl.Bases))
	if len(tpl.Buckets) > 0 {
		if tpl.StorageHost == "" {
			return nil, serrors.With(serrors.ErrBadRequest, "storage host is required when buckets are set")
		}
		host := strings.TrimRight(tpl.StorageHost, "/")
		for _, b := range tpl.Buckets {
			b = strings.Trim(strings.TrimSpace(b), "/")
			if b == "" {
				continue
			}
			bases = append(bases, host+"/"+b)
		}
	}
	for _, b := range tpl.Bases {
		if b = strings.TrimRight(strings.TrimSpace(b), "/"); b != "" {
			bases = append(bases, b)
		}
	}

	replacer := strings.NewReplacer(ProjectPlaceholder, targets.ProjectID, ScreenPlaceholder, targets.ScreenID)
	paths := make([]string, 0, len(tpl.Paths))
	for _, p := range tpl.Paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		filled := replacer.Replace(p)
		if strings.ContainsAny(filled, "{}") {
			return nil, serrors.With(serrors.ErrBadRequest, "unresolved placeholder in path template %q", p)
		}
		if !strings.HasPrefix(filled, "/") {
			filled = "/" + filled
		}
		paths = append(paths, filled)
	}

	seen := make(map[string]struct{}, len(bases)*len(paths))
	out := make([]string, 0, len(bases)*len(paths))
	for _, base := range bases {
		for _, p := range paths {
			u, err := NormalizeURL(base + p)
			if err != nil {
				return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid candidate %q", base+p)
			}
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			out = append(out, u)
		}
	}

	return out, nil
}
