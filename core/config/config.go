package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"achievement-manager/core/logger"
	"achievement-manager/core/racache"
	"achievement-manager/core/server"
	"achievement-manager/core/storage"
	"achievement-manager/feature/remote"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var validate = validator.New()

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// RACache holds the location of the emulator cache directory.
	RACache racache.Config `mapstructure:"racache"`
	// Remote holds configuration for fetching remote snapshots.
	Remote remote.Config `mapstructure:"remote"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Server holds configuration for the HTTP preview server.
	Server server.Config `mapstructure:"server"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values and bind each leaf
	// key to its env var (e.g. remote.base_url -> REMOTE_BASE_URL). Section keys
	// are never bound, so RACACHE cannot shadow the racache section.
	if err := bindValues(v, Config{}, ""); err != nil {
		return nil, err
	}

	// The emulator directory is traditionally given as RACACHE.
	if err := v.BindEnv("racache.path", "RACACHE_PATH", "RACACHE"); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the configuration against its validate tags.
func (c *Config) Validate() error {
	err := validate.Struct(c)

	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) {
		fields := make([]string, len(invalid))
		for i, fe := range invalid {
			fields[i] = fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
	}
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// bindValues uses reflection to iterate over the struct, set default values in Viper
// based on the 'default' and 'mapstructure' tags and bind the env var of every leaf key.
func bindValues(v *viper.Viper, iface any, prefix string) error {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			if err := bindValues(v, reflect.New(field.Type).Elem().Interface(), key); err != nil {
				return err
			}
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_"))); err != nil {
			return err
		}
	}
	return nil
}
