// Package config handles loading and validation of pacewatch.yaml project
// configuration for the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/growthrule/pacewatch/internal/alert"
	"github.com/growthrule/pacewatch/internal/refdata"
	ddbstore "github.com/growthrule/pacewatch/internal/store/dynamodb"
	"github.com/growthrule/pacewatch/pkg/types"
)

// FileName is the config file loaded from the project directory.
const FileName = "pacewatch.yaml"

// Config is the full CLI configuration.
type Config struct {
	Timezone  string          `yaml:"timezone"`
	Platform  string          `yaml:"platform,omitempty"`
	DynamoDB  ddbstore.Config `yaml:"dynamodb"`
	Snowflake refdata.Config  `yaml:"snowflake"`
	Directory DirectoryConfig `yaml:"directory"`
	Alerts    []alert.Config  `yaml:"alerts,omitempty"`
}

// DirectoryConfig names the read-only reference tables.
type DirectoryConfig struct {
	SearchTable string `yaml:"searchTable"`
	UserTable   string `yaml:"userTable"`
}

// Location parses the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Load reads and parses pacewatch.yaml from the given directory.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Timezone == "" {
		cfg.Timezone = "America/Montreal"
	}
	if cfg.Platform == "" {
		cfg.Platform = types.PlatformDV360
	}
}

func validate(cfg *Config) error {
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q", cfg.Timezone)
	}
	if cfg.DynamoDB.TableName == "" {
		return fmt.Errorf("dynamodb.tableName is required")
	}
	if cfg.Directory.SearchTable == "" {
		return fmt.Errorf("directory.searchTable is required")
	}
	if cfg.Directory.UserTable == "" {
		return fmt.Errorf("directory.userTable is required")
	}
	for i, a := range cfg.Alerts {
		switch a.Type {
		case alert.TypeConsole:
		case alert.TypeSNS:
			if a.TopicARN == "" {
				return fmt.Errorf("alerts[%d]: topicArn is required for sns", i)
			}
		case alert.TypeSQS:
			if a.QueueURL == "" {
				return fmt.Errorf("alerts[%d]: queueUrl is required for sqs", i)
			}
		default:
			return fmt.Errorf("alerts[%d]: unknown type %q", i, a.Type)
		}
	}
	return nil
}
