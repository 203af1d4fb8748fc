package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default nesting settings applied to new projects
	DefaultTargetWidth   float64   `json:"default_target_width"`
	DefaultTargetHeight  float64   `json:"default_target_height"`
	DefaultSpacing       float64   `json:"default_spacing"`
	DefaultAllowRotation bool      `json:"default_allow_rotation"`
	DefaultAlgorithm     Algorithm `json:"default_algorithm"`
	DefaultMaxAttempts   int       `json:"default_max_attempts"`
	DefaultMaxDimension  float64   `json:"default_max_dimension"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
}

// maxRecentProjects bounds the recent-projects list.
const maxRecentProjects = 10

// DefaultAppConfig returns an AppConfig populated with the values from
// DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultTargetWidth:   defaults.TargetWidth,
		DefaultTargetHeight:  defaults.TargetHeight,
		DefaultSpacing:       defaults.Spacing,
		DefaultAllowRotation: defaults.AllowRotation,
		DefaultAlgorithm:     defaults.Algorithm,
		DefaultMaxAttempts:   defaults.MaxAttempts,
		DefaultMaxDimension:  defaults.MaxDimension,
		RecentProjects:       []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a
// NestSettings struct. This is used when creating a new project so it
// inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *NestSettings) {
	s.TargetWidth = c.DefaultTargetWidth
	s.TargetHeight = c.DefaultTargetHeight
	s.Spacing = c.DefaultSpacing
	s.AllowRotation = c.DefaultAllowRotation
	s.Algorithm = c.DefaultAlgorithm
	s.MaxAttempts = c.DefaultMaxAttempts
	s.MaxDimension = c.DefaultMaxDimension
}

// AddRecentProject prepends path to the recent-projects list, removing any
// earlier occurrence and trimming the list to its maximum length.
func (c *AppConfig) AddRecentProject(path string) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentProjects {
		recent = recent[:maxRecentProjects]
	}
	c.RecentProjects = recent
}
