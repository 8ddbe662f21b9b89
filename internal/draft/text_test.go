package draft

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"draftkit/lib/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected [][]string
	}{
		{
			name:     "groups",
			input:    "a\nb\n\nc\n\nd\ne\n",
			expected: [][]string{{"a\n", "b\n"}, {"c\n"}, {"d\n", "e\n"}},
		},
		{
			name:     "trailing group without newline",
			input:    "a\n\nb",
			expected: [][]string{{"a\n"}, {"b"}},
		},
		{
			name:     "runs of blank lines",
			input:    "\n\n  \na\n\t\n\n\nb\n\n",
			expected: [][]string{{"a\n"}, {"b\n"}},
		},
		{
			name:     "crlf",
			input:    "Garchomp @ Choice Scarf\r\nJolly Nature\r\n\r\nDitto\r\n",
			expected: [][]string{{"Garchomp @ Choice Scarf\r\n", "Jolly Nature\r\n"}, {"Ditto\r\n"}},
		},
		{
			name:  "empty",
			input: "",
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			groups, err := Split(strings.NewReader(test.input))
			require.NoError(t, err)
			if diff := cmp.Diff(test.expected, groups); diff != "" {
				t.Fatalf("groups mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitFile(t *testing.T) {
	input := testutil.WriteFile(t, t.TempDir(), "sets.txt", "a\nb\n\nc\n\nd\ne\n")
	out := newOutput(t, "txt")

	paths, err := SplitFile(input, out)
	require.NoError(t, err)
	require.Equal(t, []string{out.Path(0), out.Path(1), out.Path(2)}, paths)

	require.Equal(t, map[string]string{
		"0.txt": "a\nb\n",
		"1.txt": "c\n",
		"2.txt": "d\ne\n",
	}, testutil.ReadDir(t, out.Dir()))
}

func TestSplitFileMissingInput(t *testing.T) {
	_, err := SplitFile(filepath.Join(t.TempDir(), "missing.txt"), newOutput(t, "txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestStrip(t *testing.T) {
	input := "Garchomp @ Choice Scarf\nAbility: Rough Skin\nTera Type: Steel\nEVs: 252 Atk\n\nDitto\nTera Type: Normal"
	var out strings.Builder

	removed, err := Strip(strings.NewReader(input), &out, DefaultStripMarker)
	require.NoError(t, err)
	require.Equal(t, 2, removed)
	require.Equal(t, "Garchomp @ Choice Scarf\nAbility: Rough Skin\nEVs: 252 Atk\n\nDitto\n", out.String())

	_, err = Strip(strings.NewReader(input), &out, "")
	require.ErrorIs(t, err, ErrEmptyMarker)
}

func TestStripFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "draft_sets.txt", "a\nTera Type: Fire\nb\n  Tera Type: Water\nc\n")
	require.NoError(t, os.Chmod(path, 0600))

	removed, err := StripFile(path, DefaultStripMarker)
	require.NoError(t, err)
	require.Equal(t, 2, removed)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "a\nb\nc\n", string(contents))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	removed, err = StripFile(path, DefaultStripMarker)
	require.NoError(t, err)
	require.Equal(t, 0, removed)
}
