package model

// AppConfig holds application-wide preferences. Shapes are never stored here;
// every board starts empty.
type AppConfig struct {
	// Board size used for new boards and headless replays
	BoardWidth  float64 `json:"board_width"`
	BoardHeight float64 `json:"board_height"`

	// Default CNC settings used by GCode export
	Cut CutSettings `json:"cut"`

	// Application preferences
	Theme          string   `json:"theme"`     // "light", "dark", "system"
	LogLevel       string   `json:"log_level"` // "debug", "info", "warn", "error"
	ExportDir      string   `json:"export_dir"`
	RecentExports  []string `json:"recent_exports"`
	MaxRecentFiles int      `json:"max_recent_files"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		BoardWidth:     960,
		BoardHeight:    640,
		Cut:            DefaultCutSettings(),
		Theme:          "system",
		LogLevel:       "info",
		RecentExports:  []string{},
		MaxRecentFiles: 10,
	}
}

// Board returns the board described by the config, falling back to the
// default size for non-positive dimensions.
func (c AppConfig) Board() Board {
	def := DefaultAppConfig()
	w, h := c.BoardWidth, c.BoardHeight
	if w <= 0 {
		w = def.BoardWidth
	}
	if h <= 0 {
		h = def.BoardHeight
	}
	return NewBoard(w, h)
}

// AddRecentExport records path at the front of the recent exports list,
// removing duplicates and trimming to MaxRecentFiles.
func (c *AppConfig) AddRecentExport(path string) {
	limit := c.MaxRecentFiles
	if limit <= 0 {
		limit = DefaultAppConfig().MaxRecentFiles
	}
	recent := []string{path}
	for _, p := range c.RecentExports {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > limit {
		recent = recent[:limit]
	}
	c.RecentExports = recent
}
