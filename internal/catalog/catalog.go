package catalog

import (
	"context"

	"nexus/internal/client"
	"nexus/internal/errors"
)

// RecentLimit is how many entries the recent section shows.
const RecentLimit = 5

// Load fetches the file listing and derives an entry per name, in the
// service's order. The caller replaces its catalog wholesale with the result
// and keeps the previous one on error.
func Load(ctx context.Context, svc client.FileService) ([]FileEntry, error) {
	names, err := svc.ListFiles(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load files")
	}
	return FromNames(names), nil
}

// FromNames derives entries for names.
func FromNames(names []string) []FileEntry {
	entries := make([]FileEntry, len(names))
	for i, name := range names {
		entries[i] = NewEntry(name)
	}
	return entries
}

// Stats are the header counters shown above the catalog.
type Stats struct {
	Total  int
	Code   int
	Recent int
}

// ComputeStats counts the entries in files.
func ComputeStats(files []FileEntry) Stats {
	s := Stats{Total: len(files)}
	for _, f := range files {
		if f.IsCode {
			s.Code++
		}
	}
	s.Recent = min(s.Total, RecentLimit)
	return s
}
