package vfs

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// SearchResult holds ranked search matches.
type SearchResult struct {
	Entries []Entry `json:"results"`
	Total   int     `json:"total"`
	Query   string  `json:"query"`
}

// Search walks the subtree under startPath and collects entries whose
// name contains query case-insensitively. With a type filter set,
// directories match only the folder filter and files only their
// classified kind. Exact name matches rank before partial ones; within
// each group ordering is by folded name.
func (s *Sandbox) Search(ctx context.Context, startPath, query string, typeFilter Kind) (*SearchResult, error) {
	resolved, err := s.Resolve(startPath)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(resolved); err != nil {
		if os.IsNotExist(err) {
			return nil, NotFoundf("path not found: %s", startPath)
		}
		return nil, IOf(err, "stat %s", startPath)
	}

	needle := strings.ToLower(query)

	var mu sync.Mutex
	matches := make([]Entry, 0, 16)
	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, resolved, func(path string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil || path == resolved {
			return nil
		}
		if isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.Contains(strings.ToLower(d.Name()), needle) {
			return nil
		}
		if typeFilter != "" {
			if d.IsDir() {
				if typeFilter != KindFolder {
					return nil
				}
			} else if Classify(d.Name()).Kind != typeFilter {
				return nil
			}
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		entry := s.newEntry(s.Rel(path), info)

		mu.Lock()
		matches = append(matches, entry)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, IOf(err, "search under %s", startPath)
	}

	sort.Slice(matches, func(i, j int) bool {
		ei := strings.ToLower(matches[i].Name) == needle
		ej := strings.ToLower(matches[j].Name) == needle
		if ei != ej {
			return ei
		}
		return strings.ToLower(matches[i].Name) < strings.ToLower(matches[j].Name)
	})

	return &SearchResult{Entries: matches, Total: len(matches), Query: query}, nil
}
