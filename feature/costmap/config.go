package costmap

// Config holds configuration for the cost mapping feature.
type Config struct {
	// CacheTTLSeconds is how long a bulk match payload stays valid.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
	// ElementsObject is the storage object holding the model element export.
	ElementsObject string `mapstructure:"elements_object" default:"exports/elements.json"`
	// Table is the database table holding model elements.
	Table string `mapstructure:"table" default:"model_elements"`
	// LoadTimeoutSeconds bounds a single element load from database or storage.
	LoadTimeoutSeconds int `mapstructure:"load_timeout_seconds" default:"30"`
}
