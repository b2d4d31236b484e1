package racache

const (
	BackendFS = "fs"
	BackendS3 = "s3"
)

// Config holds configuration for the RACache store.
type Config struct {
	// Path is the absolute path of the emulator directory containing RACache.
	// The RACACHE environment variable is accepted as well.
	Path string `mapstructure:"path" default:"" validate:"required_if=Backend fs"`
	// Backend selects where files live: fs or s3.
	Backend string `mapstructure:"backend" default:"fs" validate:"oneof=fs s3"`
	// Prefix is prepended to object names when Backend is s3.
	Prefix string `mapstructure:"prefix" default:""`
}
