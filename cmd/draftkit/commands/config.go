package commands

import (
	"draftkit/internal/draft"
	"draftkit/lib/configutil"
)

type Config struct {
	// TargetRoot is the directory rewritten image srcs point into.
	TargetRoot string `json:"target_root"`
	// ImageRoles are the image classes whose src is checked and rewritten.
	ImageRoles     []string `json:"image_roles"`
	StripMarker    string   `json:"strip_marker"`
	HeaderRowClass string   `json:"header_row_class"`
	// Catalog is the sqlite database runs are recorded in, empty disables it.
	Catalog string `json:"catalog"`
}

func defaultConfig() Config {
	return Config{
		TargetRoot:     draft.DefaultTargetRoot,
		ImageRoles:     draft.DefaultImageRoles,
		StripMarker:    draft.DefaultStripMarker,
		HeaderRowClass: draft.DefaultHeaderRowClass,
	}
}

func readConfig(path string) (Config, error) {
	return configutil.ReadWithDefaults(path, defaultConfig())
}
