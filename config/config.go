package config

import (
	"bytes"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyStorageDBPath     = "storage.db_path"
	KeyImportAutoConfirm = "import.auto_confirm"
	KeyExportNormalize   = "export.normalize_hours"
	KeyExportFormat      = "export.format"
)

type Config struct {
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Import  ImportConfig  `mapstructure:"import"`
	Export  ExportConfig  `mapstructure:"export"`
}

type StorageConfig struct {
	DBPath string `mapstructure:"db_path" validate:"required"`
}

type ImportConfig struct {
	// AutoConfirm answers every import prompt with yes; equivalent to
	// passing --yes on each import run.
	AutoConfirm bool `mapstructure:"auto_confirm"`
}

type ExportConfig struct {
	NormalizeHours bool   `mapstructure:"normalize_hours"`
	Format         string `mapstructure:"format" validate:"omitempty,oneof=csv excel"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# weeksheet configuration
storage:
  db_path: "./weeksheet.db"

import:
  auto_confirm: false

export:
  normalize_hours: true
  format: "csv"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyStorageDBPath, "./weeksheet.db")
	v.SetDefault(KeyImportAutoConfirm, false)
	v.SetDefault(KeyExportNormalize, true)
	v.SetDefault(KeyExportFormat, "csv")
}
