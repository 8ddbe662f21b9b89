package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Output writes numbered files into an existing directory, `<id>.<ext>`.
// existing files are overwritten.
type Output struct {
	directory string
	extension string
}

// NewOutput checks that `dir` is an existing directory, it is never created.
func NewOutput(dir, extension string) (Output, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return Output{}, fmt.Errorf("output directory: %w", err)
	}
	if !info.IsDir() {
		return Output{}, fmt.Errorf("output directory: %s is not a directory", dir)
	}
	return Output{directory: dir, extension: extension}, nil
}

func (o Output) Dir() string {
	return o.directory
}

func (o Output) Path(id int) string {
	return filepath.Join(o.directory, strconv.Itoa(id)+"."+o.extension)
}

func (o Output) Write(id int, contents string) (string, error) {
	path := o.Path(id)
	err := os.WriteFile(path, []byte(contents), 0644)
	if err != nil {
		return "", err
	}
	return path, nil
}

// IsRegularFile reports whether `path` exists and is a regular file.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// ListFiles returns the names of the regular files directly inside `dir`.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
