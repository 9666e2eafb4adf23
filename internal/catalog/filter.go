package catalog

import (
	"fmt"
	"strings"
)

// Section selects a subset of the full catalog.
type Section int

const (
	SectionAll Section = iota
	SectionCode
	SectionRecent
)

func (s Section) String() string {
	switch s {
	case SectionCode:
		return "code"
	case SectionRecent:
		return "recent"
	default:
		return "all"
	}
}

// ParseSection converts a name into a Section. "files" is accepted as an
// alias of "all".
func ParseSection(s string) (Section, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "files":
		return SectionAll, nil
	case "code":
		return SectionCode, nil
	case "recent":
		return SectionRecent, nil
	}
	return SectionAll, fmt.Errorf("unknown section %q", s)
}

// ViewMode only changes layout; it never affects which entries are shown.
type ViewMode int

const (
	ViewGrid ViewMode = iota
	ViewList
)

func (v ViewMode) String() string {
	if v == ViewList {
		return "list"
	}
	return "grid"
}

// ParseViewMode converts "grid" or "list" into a ViewMode.
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "grid":
		return ViewGrid, nil
	case "list":
		return ViewList, nil
	}
	return ViewGrid, fmt.Errorf("unknown view mode %q", s)
}

// Search returns the entries whose lowercased name contains the lowercased
// query. An empty query returns files unchanged.
func Search(files []FileEntry, query string) []FileEntry {
	if query == "" {
		return files
	}
	q := strings.ToLower(query)
	out := make([]FileEntry, 0, len(files))
	for _, f := range files {
		if strings.Contains(strings.ToLower(f.Name), q) {
			out = append(out, f)
		}
	}
	return out
}

// FilterSection returns the subset of the full catalog the section selects.
// Recent is the first RecentLimit entries in load order.
func FilterSection(files []FileEntry, section Section) []FileEntry {
	switch section {
	case SectionCode:
		out := make([]FileEntry, 0, len(files))
		for _, f := range files {
			if f.IsCode {
				out = append(out, f)
			}
		}
		return out
	case SectionRecent:
		return files[:min(len(files), RecentLimit)]
	default:
		return files
	}
}

// Visible composes the two filters: the section is taken from the full
// catalog, then the query narrows it.
func Visible(files []FileEntry, section Section, query string) []FileEntry {
	return Search(FilterSection(files, section), query)
}
