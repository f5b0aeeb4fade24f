package encoder

import (
	"fmt"
	"path/filepath"
	"strings"

	"vidserve/models"
)

// scaleTable maps a quality selector to the ffmpeg scale filter value.
var scaleTable = map[string]string{
	"1080": "1920:1080",
	"720":  "1280:720",
	"480":  "854:480",
	"360":  "640:360",
}

var allowedFramerates = map[string]bool{
	"30": true,
	"60": true,
}

var allowedFormats = map[string]bool{
	"mp4": true,
	"mov": true,
	"mkv": true,
}

const (
	defaultQuality   = "720"
	defaultFramerate = "30"
	defaultFormat    = "mp4"
)

// ResolveParams maps client-supplied selectors to a canonical parameter set.
// The mapping is total: unknown quality falls back to 720p, unknown
// framerate to 30 fps, unknown format to mp4. No field is ever left
// unresolved.
func ResolveParams(quality, framerate, format string) models.CanonicalParams {
	if _, ok := scaleTable[quality]; !ok {
		quality = defaultQuality
	}
	if !allowedFramerates[framerate] {
		framerate = defaultFramerate
	}
	format = strings.ToLower(format)
	if !allowedFormats[format] {
		format = defaultFormat
	}
	return models.CanonicalParams{
		Quality:   quality,
		Scale:     scaleTable[quality],
		Framerate: framerate,
		Format:    format,
	}
}

// SanitizeFilename strips directory components and replaces every character
// outside [A-Za-z0-9_.-] with an underscore. It is the only thing standing
// between client-supplied names and the filesystem and runs before any path
// is constructed.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_' || r == '.' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// OutputName derives the canonical output filename from a sanitized source
// name and resolved parameters: {base}_{quality}p_{framerate}fps.{format}.
// Identical inputs collide on the same name; the later encode overwrites the
// earlier one.
func OutputName(sourceName string, p models.CanonicalParams) string {
	base := strings.TrimSuffix(sourceName, filepath.Ext(sourceName))
	return fmt.Sprintf("%s_%sp_%sfps.%s", base, p.Quality, p.Framerate, p.Format)
}
