package draft

import (
	"path/filepath"
	"strings"

	"draftkit/lib/fsutil"
	"draftkit/lib/htmlutil"
	"draftkit/lib/telemetry"
	"draftkit/lib/textutil"
)

const (
	DefaultTargetRoot = "static/assets"
	// similarity needed before a file of the asset directory is suggested
	// for a missing asset
	suggestionThreshold = 0.85
)

var DefaultImageRoles = []string{"img-pokemon", "img-item"}

// Filename returns the final `/` separated segment of an image src.
func Filename(src string) string {
	return src[strings.LastIndex(src, "/")+1:]
}

// TargetPath is the rewritten src of an image, `<root>/<filename>`.
func TargetPath(targetRoot, src string) string {
	return targetRoot + "/" + Filename(src)
}

type MissingAsset struct {
	Entry      int
	Name       string
	Src        string
	Filename   string
	Classes    []string
	Suggestion string
}

// ImageRewriter points recognized image references at the target root,
// checking the referenced file exists in the asset directory first.
type ImageRewriter struct {
	AssetDir   string
	TargetRoot string
	Roles      []string
	// Tel receives a warning when the asset directory cannot be listed for
	// suggestions, it may be nil.
	Tel telemetry.API

	assets       []string
	assetsListed bool
}

func (r *ImageRewriter) recognized(classes []string) bool {
	for _, c := range classes {
		for _, role := range r.Roles {
			if c == role {
				return true
			}
		}
	}
	return false
}

func (r *ImageRewriter) suggest(filename string) string {
	if !r.assetsListed {
		assets, err := fsutil.ListFiles(r.AssetDir)
		if err != nil && r.Tel != nil {
			r.Tel.ReportWarning(report_extractor_list_assets, r.AssetDir, err)
		}
		r.assets = assets
		r.assetsListed = true
	}
	best, _, ok := textutil.MostSimilar(filename, r.assets, suggestionThreshold)
	if !ok {
		return ""
	}
	return best
}

// Rewrite rewrites the src of every recognized image of the entry, a
// missing asset does not stop the rewrite, it is returned instead.
func (r *ImageRewriter) Rewrite(layout string, entry *Entry) ([]MissingAsset, error) {
	var missingAssets []MissingAsset
	for i, img := range entry.Images {
		if !r.recognized(img.Classes) {
			continue
		}
		if !img.HasSrc {
			return missingAssets, missing(layout, entry.Index, "img[src]")
		}

		filename := Filename(img.Src)
		if !fsutil.IsRegularFile(filepath.Join(r.AssetDir, filename)) {
			missingAssets = append(missingAssets, MissingAsset{
				Entry:      entry.Index,
				Name:       entry.DisplayName(),
				Src:        img.Src,
				Filename:   filename,
				Classes:    img.Classes,
				Suggestion: r.suggest(filename),
			})
		}

		target := TargetPath(r.TargetRoot, img.Src)
		htmlutil.SetAttr(img.Node, "src", target)
		entry.Images[i].Src = target
	}
	return missingAssets, nil
}
