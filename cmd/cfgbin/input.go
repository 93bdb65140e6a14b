package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"
)

const pathSeparators = `/\`

// normalizePath cleans a path argument as pasted from a shell or a file manager: it
// strips surrounding whitespace, one pair of matching quotes and trailing separators.
// A path made only of separators is kept as a single one.
func normalizePath(arg string) string {
	path := strings.TrimSpace(arg)

	if len(path) >= 2 {
		first, last := path[0], path[len(path)-1]
		if (first == '"' || first == '\'') && first == last {
			path = strings.TrimSpace(path[1 : len(path)-1])
		}
	}

	trimmed := strings.TrimRight(path, pathSeparators)
	if trimmed == "" && path != "" {
		return path[:1]
	}

	return trimmed
}

// mappedFile is a read-only view of a file's bytes.
type mappedFile struct {
	data   []byte
	region mmap.MMap
}

// openMapped maps the file at path read-only. Empty files are not mapped and yield an
// empty view.
func openMapped(path string) (*mappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	if info.Size() == 0 {
		return &mappedFile{data: []byte{}}, nil
	}

	region, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", path, err)
	}

	return &mappedFile{data: region, region: region}, nil
}

// Bytes returns the file contents. They are invalid after Close.
func (m *mappedFile) Bytes() []byte {
	return m.data
}

// Close unmaps the file.
func (m *mappedFile) Close() error {
	if m.region == nil {
		return nil
	}

	err := m.region.Unmap()
	m.region, m.data = nil, nil

	return err
}
