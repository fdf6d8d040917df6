package vfs

import (
	"os"
	"sort"
	"strings"
)

// SortKey selects the primary listing sort field.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortBySize     SortKey = "size"
	SortByModified SortKey = "modified"
	SortByType     SortKey = "type"
)

// SortOrder selects ascending or descending order.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ListOptions controls filtering and ordering of a directory listing.
type ListOptions struct {
	Search string
	SortBy SortKey
	Order  SortOrder
}

// Listing is an ordered directory listing with partition counts.
type Listing struct {
	Entries []Entry `json:"files"`
	Path    string  `json:"path"`
	Files   int     `json:"total_files"`
	Folders int     `json:"total_folders"`
}

// List enumerates the immediate children of a directory. Hidden entries
// are always skipped. A non-empty search term keeps only names containing
// it case-insensitively. Output is sorted per options and partitioned
// folders-first after sorting.
func (s *Sandbox) List(path string, opts ListOptions) (*Listing, error) {
	resolved, err := s.Resolve(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NotFoundf("path not found: %s", path)
		}
		return nil, IOf(err, "stat %s", path)
	}
	if !info.IsDir() {
		return nil, NotFoundf("not a directory: %s", path)
	}

	children, err := os.ReadDir(resolved)
	if err != nil {
		return nil, IOf(err, "read directory %s", path)
	}

	term := strings.ToLower(opts.Search)
	entries := make([]Entry, 0, len(children))
	for _, child := range children {
		if isHidden(child.Name()) {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(child.Name()), term) {
			continue
		}
		childInfo, err := child.Info()
		if err != nil {
			// Entry vanished between readdir and stat; skip it.
			continue
		}
		rel := s.Rel(resolved)
		if rel != "" {
			rel += "/"
		}
		entries = append(entries, s.newEntry(rel+child.Name(), childInfo))
	}

	sortEntries(entries, opts.SortBy, opts.Order)

	listing := &Listing{Path: s.Rel(resolved)}
	folders := make([]Entry, 0, len(entries))
	files := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Kind == KindFolder {
			folders = append(folders, e)
		} else {
			files = append(files, e)
		}
	}
	listing.Entries = append(folders, files...)
	listing.Folders = len(folders)
	listing.Files = len(files)
	return listing, nil
}

// sortEntries orders entries by the requested key. Name sorting is
// case-insensitive. For size and modified, ties keep ascending name order
// regardless of direction: entries are pre-sorted by folded name, then
// stable-sorted by the primary key. The type key compares the
// (kind, folded name) tuple directly, with only the kind half honoring
// the direction.
func sortEntries(entries []Entry, key SortKey, order SortOrder) {
	desc := order == OrderDesc

	fold := func(e Entry) string { return strings.ToLower(e.Name) }

	switch key {
	case SortBySize, SortByModified:
		sort.SliceStable(entries, func(i, j int) bool {
			return fold(entries[i]) < fold(entries[j])
		})
		var less func(i, j int) bool
		if key == SortBySize {
			less = func(i, j int) bool { return entries[i].Size < entries[j].Size }
		} else {
			less = func(i, j int) bool { return entries[i].ModifiedAt.Before(entries[j].ModifiedAt) }
		}
		if desc {
			inner := less
			less = func(i, j int) bool { return inner(j, i) }
		}
		sort.SliceStable(entries, less)
	case SortByType:
		sort.SliceStable(entries, func(i, j int) bool {
			ki, kj := string(entries[i].Kind), string(entries[j].Kind)
			if ki != kj {
				if desc {
					return ki > kj
				}
				return ki < kj
			}
			return fold(entries[i]) < fold(entries[j])
		})
	default: // name
		sort.SliceStable(entries, func(i, j int) bool {
			if desc {
				return fold(entries[i]) > fold(entries[j])
			}
			return fold(entries[i]) < fold(entries[j])
		})
	}
}
