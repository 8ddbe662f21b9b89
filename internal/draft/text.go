package draft

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"draftkit/lib/fsutil"
)

const DefaultStripMarker = "Tera Type"

var ErrEmptyMarker = errors.New("strip marker is empty")

// readLines returns every line of r with its line ending kept, the last
// line may have none.
func readLines(r io.Reader) ([]string, error) {
	reader := bufio.NewReader(r)
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// Split partitions the input into groups of consecutive non-blank lines,
// one or more blank lines end a group. Lines keep their line endings.
func Split(r io.Reader) ([][]string, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	var groups [][]string
	var current []string
	for _, line := range lines {
		if isBlank(line) {
			if len(current) > 0 {
				groups = append(groups, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups, nil
}

// SplitFile writes every group of `input` to `<i>.txt` in the output, in
// group order, and returns the written paths.
func SplitFile(input string, out fsutil.Output) ([]string, error) {
	f, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	groups, err := Split(f)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(groups))
	for i, group := range groups {
		path, err := out.Write(i, strings.Join(group, ""))
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Strip copies r to w without the lines containing `marker`.
func Strip(r io.Reader, w io.Writer, marker string) (removed int, err error) {
	if marker == "" {
		return 0, ErrEmptyMarker
	}
	lines, err := readLines(r)
	if err != nil {
		return 0, err
	}
	for _, line := range lines {
		if strings.Contains(line, marker) {
			removed++
			continue
		}
		_, err = io.WriteString(w, line)
		if err != nil {
			return removed, err
		}
	}
	return removed, nil
}

// StripFile removes the lines containing `marker` from the file in place,
// keeping its permissions.
func StripFile(path, marker string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var out strings.Builder
	removed, err := Strip(strings.NewReader(string(contents)), &out, marker)
	if err != nil {
		return 0, err
	}

	err = os.WriteFile(path, []byte(out.String()), info.Mode().Perm())
	if err != nil {
		return 0, err
	}
	return removed, nil
}
