package models

// CanonicalParams is the fully resolved encode parameter set. Every field is
// concrete; unknown client selectors have already been mapped to defaults.
type CanonicalParams struct {
	Quality   string // "1080", "720", "480", "360"
	Scale     string // ffmpeg scale filter value, e.g. "1280:720"
	Framerate string // "30" or "60"
	Format    string // container extension: "mp4", "mov", "mkv"
}

// Resolution returns the display label stored in metadata, e.g. "720p".
func (p CanonicalParams) Resolution() string {
	return p.Quality + "p"
}

// OutputAsset describes one finished encode output.
type OutputAsset struct {
	Identity string `json:"-"`
	Filename string `json:"file"`
	Path     string `json:"-"`
	Metadata MetadataRecord `json:"metadata"`
}

// MetadataRecord is the sidecar persisted next to an output file. A zero
// record means "no sidecar"; callers render unknown rather than fail.
type MetadataRecord struct {
	Resolution string `json:"resolution,omitempty"`
	Framerate  string `json:"framerate,omitempty"`
	Format     string `json:"format,omitempty"`
	SizeKB     int64  `json:"size_kb,omitempty"`
}
