// Package config holds the campaign tooling settings. Every value has a default;
// a YAML file may override any subset of them.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Destination is a pair of output files for one filter run.
type Destination struct {
	Accepted string `yaml:"accepted"`
	Removed  string `yaml:"removed"`
}

type OutputConfig struct {
	Default Destination `yaml:"default"`
	Public  Destination `yaml:"public"`
}

type FilterConfig struct {
	SanctionsFile string       `yaml:"sanctionsFile"`
	PublicMarker  string       `yaml:"publicMarker"`
	Output        OutputConfig `yaml:"output"`
	MetricsFile   string       `yaml:"metricsFile"`
}

type MetadataConfig struct {
	Count       int    `yaml:"count"`
	BaseName    string `yaml:"baseName"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
	OutDir      string `yaml:"outDir"`
	MetricsFile string `yaml:"metricsFile"`
}

type Config struct {
	Filter   FilterConfig   `yaml:"filter"`
	Metadata MetadataConfig `yaml:"metadata"`
}

func Default() *Config {
	return &Config{
		Filter: FilterConfig{
			SanctionsFile: "data/ofac.csv",
			PublicMarker:  "public",
			Output: OutputConfig{
				Default: Destination{
					Accepted: "data/new_addresses.csv",
					Removed:  "data/removed_addresses.csv",
				},
				Public: Destination{
					Accepted: "data/public/new_addresses.csv",
					Removed:  "data/public/removed_addresses.csv",
				},
			},
		},
		Metadata: MetadataConfig{
			Count:       10000,
			BaseName:    "Aligned ZK Arcade - Ticket - TESTNET ONLY",
			Description: "Your ticket to the future of ethereum. TESTNET ONLY",
			Image:       "ipfs://bafkreiabklbmsnqwhjktmz55i4kyk6efypf7565n7nfkbkpevcsfsujb6i",
			OutDir:      ".",
		},
	}
}

// Load returns the defaults overlaid with the YAML file at fileName. An empty
// fileName yields the defaults.
func Load(fileName string) (*Config, error) {
	cfg := Default()
	if fileName == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", fileName)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Filter.SanctionsFile == "" {
		errs = append(errs, "filter.sanctionsFile is required")
	}
	if c.Filter.PublicMarker == "" {
		errs = append(errs, "filter.publicMarker must not be empty")
	}
	destinations := []struct {
		name string
		dest Destination
	}{
		{"default", c.Filter.Output.Default},
		{"public", c.Filter.Output.Public},
	}
	for _, d := range destinations {
		if d.dest.Accepted == "" || d.dest.Removed == "" {
			errs = append(errs, fmt.Sprintf("filter.output.%s needs both accepted and removed paths", d.name))
		} else if d.dest.Accepted == d.dest.Removed {
			errs = append(errs, fmt.Sprintf("filter.output.%s accepted and removed paths must differ", d.name))
		}
	}

	if c.Metadata.Count < 0 {
		errs = append(errs, fmt.Sprintf("metadata.count (%d) must not be negative", c.Metadata.Count))
	}
	if c.Metadata.OutDir == "" {
		errs = append(errs, "metadata.outDir is required")
	}

	if len(errs) > 0 {
		return errors.Errorf("invalid config:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
