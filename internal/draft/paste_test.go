package draft

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"draftkit/lib/fsutil"
	"draftkit/lib/telemetry"
	"draftkit/lib/testutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const pasteHTML = `<html><head><title>Team</title></head><body>
<h1>Draft pool</h1>
<article><div><img class="img-pokemon" src="/img/pokemon/445-0.png"><img class="img-item" src="/img/items/choice-scarf.png"><img class="img-type" src="/img/types/dragon.png"></div><div><pre><span class="type-dragon">Garchomp</span> @ Choice Scarf
Ability: Rough Skin</pre></div></article>
<article><div><img class="img-pokemon" src="/img/pokemon/1000.png"></div><div><pre><span>Gholdengo</span></pre></div></article>
<article><div></div><div><pre><span>Ditto</span></pre></div></article>
<aside><article><div></div><pre><span>Nested</span></pre></article></aside>
</body></html>`

func parseDoc(t testing.TB, contents string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contents))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func newOutput(t testing.TB, ext string) fsutil.Output {
	out, err := fsutil.NewOutput(t.TempDir(), ext)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func runPaste(t testing.TB, assets string, out fsutil.Output) (Result, string, *telemetry.Recorder) {
	rec := telemetry.NewRecorder()
	var diagnostics bytes.Buffer
	extractor := NewExtractor(Options{
		Layout:   PasteLayout{},
		Output:   out,
		AssetDir: assets,
	}, rec, &diagnostics)

	result, err := extractor.Run(context.Background(), parseDoc(t, pasteHTML))
	require.NoError(t, err)
	return result, diagnostics.String(), rec
}

func TestPasteLayoutLocate(t *testing.T) {
	entries, err := PasteLayout{}.Locate(parseDoc(t, pasteHTML))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	names := make([]string, len(entries))
	for i, e := range entries {
		require.Equal(t, i, e.Index)
		names[i] = e.Name
	}
	require.Equal(t, []string{"Garchomp", "Gholdengo", "Ditto"}, names)

	require.Len(t, entries[0].Images, 3)
	require.Equal(t, []string{"img-item"}, entries[0].Images[1].Classes)
	require.Empty(t, entries[2].Images)
}

func TestPasteExtract(t *testing.T) {
	assets := testutil.AssetDir(t, "445-0.png", "choice-scarf.png", "1001.png")
	out := newOutput(t, "html")

	result, diagnostics, rec := runPaste(t, assets, out)

	files := testutil.ReadDir(t, out.Dir())
	require.Len(t, files, 3)
	require.Len(t, result.Entries, 3)
	for i, written := range result.Entries {
		require.Equal(t, i, written.Index)
		require.Equal(t, out.Path(i), written.Path)
	}

	expected := `<div><img class="img-pokemon" src="static/assets/445-0.png"/>` +
		`<img class="img-item" src="static/assets/choice-scarf.png"/>` +
		`<img class="img-type" src="/img/types/dragon.png"/></div>` +
		`<div><pre><span class="type-dragon">Garchomp</span> @ Choice Scarf
Ability: Rough Skin</pre></div>`
	if diff := cmp.Diff(expected, files["0.html"]); diff != "" {
		t.Fatalf("0.html mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t,
		`<div><img class="img-pokemon" src="static/assets/1000.png"/></div><div><pre><span>Gholdengo</span></pre></div>`,
		files["1.html"],
	)
	require.Equal(t, `<div></div><div><pre><span>Ditto</span></pre></div>`, files["2.html"])

	require.Equal(t, "Missing asset /img/pokemon/1000.png for Gholdengo [img-pokemon] (closest match: 1001.png)\n", diagnostics)
	require.Equal(t, []MissingAsset{{
		Entry:      1,
		Name:       "Gholdengo",
		Src:        "/img/pokemon/1000.png",
		Filename:   "1000.png",
		Classes:    []string{"img-pokemon"},
		Suggestion: "1001.png",
	}}, result.Missing)
	require.Len(t, rec.Find("warning", report_extractor_rewrite_image), 1)
	require.Equal(t, int64(3), rec.Counts["draft: "+report_extractor_entries])
}

func TestPasteExtractMissingEverything(t *testing.T) {
	out := newOutput(t, "html")
	result, diagnostics, _ := runPaste(t, testutil.AssetDir(t), out)

	require.Len(t, result.Missing, 3)
	require.Equal(t, 3, strings.Count(diagnostics, "Missing asset"))

	// paths are rewritten whether the asset exists or not
	files := testutil.ReadDir(t, out.Dir())
	require.Contains(t, files["0.html"], `src="static/assets/445-0.png"`)
	require.Contains(t, files["0.html"], `src="static/assets/choice-scarf.png"`)
	require.Contains(t, files["1.html"], `src="static/assets/1000.png"`)
}

func TestPasteExtractIdempotent(t *testing.T) {
	assets := testutil.AssetDir(t, "445-0.png")

	first := newOutput(t, "html")
	runPaste(t, assets, first)
	second := newOutput(t, "html")
	runPaste(t, assets, second)

	require.Equal(t, testutil.ReadDir(t, first.Dir()), testutil.ReadDir(t, second.Dir()))
}

func TestPasteExtractCustomRoots(t *testing.T) {
	out := newOutput(t, "html")
	extractor := NewExtractor(Options{
		Layout:     PasteLayout{},
		Output:     out,
		AssetDir:   testutil.AssetDir(t, "dragon.png"),
		TargetRoot: "public/img",
		Roles:      []string{"img-type"},
	}, telemetry.NewRecorder(), &bytes.Buffer{})

	result, err := extractor.Run(context.Background(), parseDoc(t, pasteHTML))
	require.NoError(t, err)
	require.Empty(t, result.Missing)

	files := testutil.ReadDir(t, out.Dir())
	require.Contains(t, files["0.html"], `src="public/img/dragon.png"`)
	require.Contains(t, files["0.html"], `src="/img/pokemon/445-0.png"`)
}

func TestPasteLayoutErrors(t *testing.T) {
	cases := []struct {
		name   string
		html   string
		index  int
		lookup string
	}{
		{
			name:   "no label",
			html:   `<body><article><div></div><pre>Garchomp</pre></article></body>`,
			index:  0,
			lookup: "pre span",
		},
		{
			name:   "no pre",
			html:   `<body><article><div></div><pre><span>A</span></pre></article><article><div></div></article></body>`,
			index:  1,
			lookup: "pre",
		},
		{
			name:   "empty label",
			html:   `<body><article><div></div><pre><span></span></pre></article></body>`,
			index:  0,
			lookup: "pre span text",
		},
		{
			name:   "no image div",
			html:   `<body><article><pre><span>A</span></pre></article></body>`,
			index:  0,
			lookup: "div",
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			_, err := PasteLayout{}.Locate(parseDoc(t, test.html))
			require.ErrorIs(t, err, ErrMissingNode)

			var lookupErr *LookupError
			require.True(t, errors.As(err, &lookupErr))
			require.Equal(t, "paste", lookupErr.Layout)
			require.Equal(t, test.index, lookupErr.Index)
			require.Equal(t, test.lookup, lookupErr.Lookup)
		})
	}
}

func TestPasteExtractFailsBeforeWriting(t *testing.T) {
	out := newOutput(t, "html")
	rec := telemetry.NewRecorder()
	extractor := NewExtractor(Options{Layout: PasteLayout{}, Output: out}, rec, &bytes.Buffer{})

	doc := parseDoc(t, `<body><article><div></div><pre><span>A</span></pre></article><article></article></body>`)
	_, err := extractor.Run(context.Background(), doc)
	require.ErrorIs(t, err, ErrMissingNode)
	require.Contains(t, err.Error(), "paste layout: entry 1: lookup pre")

	require.Empty(t, testutil.ReadDir(t, out.Dir()))
	require.Len(t, rec.Find("broken", report_extractor_locate), 1)
}

func TestRecognizedImageWithoutSrc(t *testing.T) {
	out := newOutput(t, "html")
	extractor := NewExtractor(Options{Layout: PasteLayout{}, Output: out}, telemetry.NewRecorder(), &bytes.Buffer{})

	doc := parseDoc(t, `<body><article><div><img class="img-item"></div><pre><span>A</span></pre></article></body>`)
	_, err := extractor.Run(context.Background(), doc)

	var lookupErr *LookupError
	require.True(t, errors.As(err, &lookupErr))
	require.Equal(t, "img[src]", lookupErr.Lookup)
}

func TestFilename(t *testing.T) {
	cases := []struct {
		src      string
		filename string
		target   string
	}{
		{src: "/img/pokemon/445-0.png", filename: "445-0.png", target: "static/assets/445-0.png"},
		{src: "https://pokepast.es/img/items/leftovers.png", filename: "leftovers.png", target: "static/assets/leftovers.png"},
		{src: "plain.png", filename: "plain.png", target: "static/assets/plain.png"},
		{src: "/img/", filename: "", target: "static/assets/"},
	}
	for _, test := range cases {
		require.Equal(t, test.filename, Filename(test.src), test.src)
		require.Equal(t, test.target, TargetPath(DefaultTargetRoot, test.src), test.src)
	}
}

func TestPasteExtractUnreadableAssetDir(t *testing.T) {
	// a file where the asset directory should be cannot be listed
	assets := testutil.WriteFile(t, t.TempDir(), "assets", "")
	rec := telemetry.NewRecorder()
	var diagnostics bytes.Buffer
	extractor := NewExtractor(Options{
		Layout:   PasteLayout{},
		Output:   newOutput(t, "html"),
		AssetDir: assets,
	}, rec, &diagnostics)

	result, err := extractor.Run(context.Background(), parseDoc(t, pasteHTML))
	require.NoError(t, err)
	require.Len(t, result.Missing, 3)
	require.NotContains(t, diagnostics.String(), "closest match")

	warnings := rec.Find("warning", report_extractor_list_assets)
	require.Len(t, warnings, 1)
	require.Equal(t, assets, warnings[0].Params[0])
}

func TestPasteExtractKeepsQuotesInText(t *testing.T) {
	out := newOutput(t, "html")
	extractor := NewExtractor(Options{Layout: PasteLayout{}, Output: out}, telemetry.NewRecorder(), &bytes.Buffer{})

	doc := parseDoc(t, `<body><article><div></div><pre><span>Farfetch'd</span> @ "Leek" &amp; <i>Stick</i></pre></article></body>`)
	_, err := extractor.Run(context.Background(), doc)
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"0.html": `<div></div><pre><span>Farfetch'd</span> @ "Leek" &amp; <i>Stick</i></pre>`,
	}, testutil.ReadDir(t, out.Dir()))
}
