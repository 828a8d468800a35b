package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// ResponseExt is the extension a file needs to be treated as a response document.
const ResponseExt = ".txt"

// ListResponseFiles returns the paths of the response documents directly inside dir.
// Without sorted the order is whatever the filesystem yields.
func ListResponseFiles(dir string, sorted bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: input directory %s: %v", ErrConfiguration, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: input path %s is not a directory", ErrConfiguration, dir)
	}

	f, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: open input directory %s: %v", ErrConfiguration, dir, err)
	}
	defer f.Close()

	// ReadDir on an open file keeps directory order; os.ReadDir would sort.
	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("%w: list input directory %s: %v", ErrConfiguration, dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ResponseExt) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		// Follow symlinks so a link to a directory is skipped like a directory.
		// A dangling link is kept and fails on read.
		if e.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				continue
			}
		}
		paths = append(paths, path)
	}

	if sorted {
		sort.Strings(paths)
	}
	return paths, nil
}

func readResponse(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrFileRead, path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s: content is not valid UTF-8", ErrFileRead, path)
	}
	return string(data), nil
}
