package api

// API limits and constants.
const (
	// MaxUploadSize is the maximum allowed size for image uploads (20 MB).
	MaxUploadSize = 20 << 20
)

// Cache-Control header values.
const (
	CacheOneWeek = "public, max-age=604800"
	CacheOneDay  = "public, max-age=86400"
	CacheNoStore = "no-cache"
)

// Analysis endpoint rate limits. The curation pipeline touches the
// market snapshot and every artwork in a catalogue, so it is the one
// part of the API worth protecting from tight polling loops.
const (
	AnalysisRatePerMinute = 30
	AnalysisBurst         = 10
)
