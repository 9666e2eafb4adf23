// Package navigator models the service's directory tree as slash-delimited
// path strings rooted at ".". Paths are sent to the service as-is; the
// service is responsible for rejecting anything that escapes its root.
package navigator

import (
	"context"
	"strings"

	"nexus/internal/client"
	"nexus/internal/errors"
)

// Root is the service's root path.
const Root = "."

// Descend returns the path of child under current.
func Descend(current, child string) string {
	if current == Root || current == "" {
		return child
	}
	return current + "/" + child
}

// Ascend drops the last segment of current. Ascending from a top-level
// directory, or from the root, yields the root.
func Ascend(current string) string {
	parts := strings.Split(current, "/")
	parent := strings.Join(parts[:len(parts)-1], "/")
	if parent == "" {
		return Root
	}
	return parent
}

// Segments splits p into its components for breadcrumb display. The root
// has no segments.
func Segments(p string) []string {
	if p == Root || p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// Browse requests the listing of p. Each call hits the service; listings
// are never cached or merged.
func Browse(ctx context.Context, svc client.FileService, p string) (client.DirectoryListing, error) {
	listing, err := svc.Browse(ctx, p)
	if err != nil {
		return client.DirectoryListing{}, errors.Wrapf(err, "failed to browse %s", p)
	}
	if listing.CurrentPath == "" {
		listing.CurrentPath = p
	}
	return listing, nil
}
