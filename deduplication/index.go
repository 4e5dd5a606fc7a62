package deduplication

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

var frontMatterSlugRe = regexp.MustCompile(`(?m)^slug:\s*"?([^"\n]+)"?`)

// ContentIndex is the set of slugs already used by published content
type ContentIndex map[string]struct{}

// Has reports whether slug is taken
func (ci ContentIndex) Has(slug string) bool {
	_, ok := ci[slug]
	return ok
}

// Add inserts slugs into the index
func (ci ContentIndex) Add(slugs ...string) {
	for _, s := range slugs {
		ci[s] = struct{}{}
	}
}

// Merge copies every slug of other into ci
func (ci ContentIndex) Merge(other ContentIndex) {
	for s := range other {
		ci[s] = struct{}{}
	}
}

// LoadContentIndex scans dir recursively for markdown files and collects
// the lower-cased file stem and front-matter slug of each.
// A missing directory yields an empty index.
func LoadContentIndex(dir string, logger zerolog.Logger) (ContentIndex, error) {
	index := make(ContentIndex)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == dir {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}

		stem := strings.TrimSuffix(d.Name(), ".md")
		index.Add(strings.ToLower(stem))

		data, err := os.ReadFile(path)
		if err != nil {
			logger.Debug().Err(err).Str("path", path).Msg("Unreadable content file")
			return nil
		}
		if m := frontMatterSlugRe.FindSubmatch(data); m != nil {
			index.Add(strings.ToLower(strings.TrimSpace(string(m[1]))))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return index, nil
}
