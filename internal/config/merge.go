package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// overlaySection decodes one top-level overlay section onto cfg.
type overlaySection func(cfg *Config, node *yaml.Node) error

// replaceSection decodes into a fresh zero value and assigns it, so keys the
// overlay omits are cleared instead of inherited.
func replaceSection[T any](field func(*Config) *T) overlaySection {
	return func(cfg *Config, node *yaml.Node) error {
		var v T
		if err := node.Decode(&v); err != nil {
			return err
		}
		*field(cfg) = v
		return nil
	}
}

// overlaySections maps the YAML keys of Config to their decoders. Keys not
// listed are ignored.
//
//nolint:gochecknoglobals // Fixed lookup table.
var overlaySections = map[string]overlaySection{
	"api":     replaceSection(func(c *Config) *APIConfig { return &c.API }),
	"listing": replaceSection(func(c *Config) *ListingConfig { return &c.Listing }),
	"cache":   replaceSection(func(c *Config) *CacheConfig { return &c.Cache }),
	"logging": replaceSection(func(c *Config) *LoggingConfig { return &c.Logging }),
}

// ShallowMergeYAML applies the overlay file at overlayPath onto target. Every
// section present in the overlay replaces the whole section in target.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var sections map[string]yaml.Node
	if err = yaml.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range sections {
		apply, ok := overlaySections[key]
		if !ok {
			continue
		}
		if err = apply(target, &node); err != nil {
			return fmt.Errorf("applying overlay section %q from %s: %w", key, overlayPath, err)
		}
	}
	return nil
}
