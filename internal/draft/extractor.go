package draft

import (
	"context"
	"fmt"
	"io"
	"os"

	"draftkit/lib/fsutil"
	"draftkit/lib/htmlutil"
	"draftkit/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	report_extractor_locate        = "extractor.locate"
	report_extractor_rewrite_image = "extractor.rewrite-image"
	report_extractor_list_assets   = "extractor.list-assets"
	report_extractor_strip         = "extractor.strip"
	report_extractor_write_entry   = "extractor.write-entry"
	report_extractor_entries       = "extractor.entries"
)

var tracer = otel.Tracer("draftkit.internal.draft")

type Options struct {
	Layout Layout
	Output fsutil.Output
	// AssetDir is only read when the layout yields image references.
	AssetDir   string
	TargetRoot string
	Roles      []string
}

type WrittenEntry struct {
	Index int
	Name  string
	Path  string
}

type Result struct {
	Entries []WrittenEntry
	Missing []MissingAsset
}

// Extractor writes every entry of a document to its own numbered file.
type Extractor struct {
	opts        Options
	tel         telemetry.API
	diagnostics io.Writer
}

// NewExtractor creates an extractor, missing asset diagnostics are written
// to `diagnostics` (stdout when nil).
func NewExtractor(opts Options, tel telemetry.API, diagnostics io.Writer) Extractor {
	if opts.TargetRoot == "" {
		opts.TargetRoot = DefaultTargetRoot
	}
	if opts.Roles == nil {
		opts.Roles = DefaultImageRoles
	}
	if diagnostics == nil {
		diagnostics = os.Stdout
	}
	return Extractor{
		opts:        opts,
		tel:         telemetry.NewScopedAPI("draft", tel),
		diagnostics: diagnostics,
	}
}

// Run locates the entries of the document, rewrites and strips them, then
// writes them out. A structural error aborts the run before anything is
// written, a write error may leave the files written so far in place.
func (e Extractor) Run(ctx context.Context, doc *goquery.Document) (Result, error) {
	ctx, span := tracer.Start(ctx, "Extractor.Run", trace.WithAttributes(
		attribute.String("layout", e.opts.Layout.Name()),
		attribute.String("output", e.opts.Output.Dir()),
	))
	defer span.End()

	entries, err := e.locate(ctx, doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "locate entries")
		return Result{}, err
	}

	var result Result
	rewriter := &ImageRewriter{
		AssetDir:   e.opts.AssetDir,
		TargetRoot: e.opts.TargetRoot,
		Roles:      e.opts.Roles,
		Tel:        e.tel,
	}
	for i := range entries {
		entry := &entries[i]

		missingAssets, err := rewriter.Rewrite(e.opts.Layout.Name(), entry)
		if err != nil {
			e.tel.ReportBroken(report_extractor_rewrite_image, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "rewrite images")
			return result, err
		}
		for _, m := range missingAssets {
			e.reportMissing(m)
		}
		result.Missing = append(result.Missing, missingAssets...)

		err = e.opts.Layout.Strip(entry)
		if err != nil {
			e.tel.ReportBroken(report_extractor_strip, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "strip entry")
			return result, err
		}
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		written, err := e.write(ctx, entry)
		if err != nil {
			e.tel.ReportBroken(report_extractor_write_entry, entry.Index, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "write entry")
			return result, err
		}
		result.Entries = append(result.Entries, written)
	}

	e.tel.ReportCount(report_extractor_entries, int64(len(result.Entries)))
	span.SetAttributes(
		attribute.Int("entries", len(result.Entries)),
		attribute.Int("missing_assets", len(result.Missing)),
	)
	return result, nil
}

func (e Extractor) locate(ctx context.Context, doc *goquery.Document) ([]Entry, error) {
	_, span := tracer.Start(ctx, "Extractor.locate")
	defer span.End()

	entries, err := e.opts.Layout.Locate(doc)
	if err != nil {
		e.tel.ReportBroken(report_extractor_locate, err)
		return nil, err
	}
	e.tel.ReportDebug("located entries", e.opts.Layout.Name(), len(entries))
	span.SetAttributes(attribute.Int("entries", len(entries)))
	return entries, nil
}

func (e Extractor) reportMissing(m MissingAsset) {
	line := fmt.Sprintf("Missing asset %s for %s %v", m.Src, m.Name, m.Classes)
	if m.Suggestion != "" {
		line += fmt.Sprintf(" (closest match: %s)", m.Suggestion)
	}
	fmt.Fprintln(e.diagnostics, line)
	e.tel.ReportWarning(report_extractor_rewrite_image, m.Src, m.Name)
}

func (e Extractor) write(ctx context.Context, entry Entry) (WrittenEntry, error) {
	_, span := tracer.Start(ctx, "Extractor.write", trace.WithAttributes(
		attribute.Int("index", entry.Index),
	))
	defer span.End()

	contents, err := htmlutil.Render(entry.Content)
	if err != nil {
		return WrittenEntry{}, fmt.Errorf("render entry %d: %w", entry.Index, err)
	}
	path, err := e.opts.Output.Write(entry.Index, contents)
	if err != nil {
		return WrittenEntry{}, fmt.Errorf("write entry %d: %w", entry.Index, err)
	}
	return WrittenEntry{Index: entry.Index, Name: entry.Name, Path: path}, nil
}

// ParseFile parses an html file leniently.
func ParseFile(path string) (*goquery.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}
