package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Overrides is the subset of Config that may be patched from
// ~/.config/gowm/gowm.toml at startup (SPEC_FULL §6.3's "two-layer
// config"). Tags/rules/keys/buttons/layouts stay compiled Go data:
// only the scalar knobs round-trip through TOML, the same split
// noisetorch draws between its hardcoded UI and its config.toml.
type Overrides struct {
	MasterFactor *float64 `toml:"master_factor"`
	MasterCount  *int     `toml:"master_count"`
	BorderPixel  *int     `toml:"border_pixel"`
	SnapPixels   *int     `toml:"snap_pixels"`
	WindowGap    *int     `toml:"window_gap"`
	ShowBar      *bool    `toml:"show_bar"`
	TopBar       *bool    `toml:"top_bar"`
	ResizeHints  *bool    `toml:"resize_hints"`
	Font         *string  `toml:"font"`
}

// Path returns the default override file location, honouring
// $XDG_CONFIG_HOME the way noisetorch's configDir() does.
func Path() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "gowm", "gowm.toml"), nil
}

// LoadOverrides reads path if it exists and applies every field it
// sets onto cfg; a missing file is not an error — the compiled
// defaults apply verbatim, matching spec.md's compile-time-only model
// when no override file is present.
func LoadOverrides(cfg *Config, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	var o Overrides
	if _, err := toml.DecodeFile(path, &o); err != nil {
		return err
	}
	if o.MasterFactor != nil {
		cfg.MasterFactor = *o.MasterFactor
	}
	if o.MasterCount != nil {
		cfg.MasterCount = *o.MasterCount
	}
	if o.BorderPixel != nil {
		cfg.BorderPixel = *o.BorderPixel
	}
	if o.SnapPixels != nil {
		cfg.SnapPixels = *o.SnapPixels
	}
	if o.WindowGap != nil {
		cfg.WindowGap = *o.WindowGap
	}
	if o.ShowBar != nil {
		cfg.ShowBar = *o.ShowBar
	}
	if o.TopBar != nil {
		cfg.TopBar = *o.TopBar
	}
	if o.ResizeHints != nil {
		cfg.ResizeHints = *o.ResizeHints
	}
	if o.Font != nil {
		cfg.Font = *o.Font
	}
	return nil
}
