package cli

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lytics/graphlayout"
)

// fileConfig is the TOML configuration file. Only the keys present in the
// file are applied.
//
//	[layout]
//	iterations = 200
//	lin_log = true
//	k_gravity = 0.05
type fileConfig struct {
	Layout layoutTable `toml:"layout"`
}

type layoutTable struct {
	Iterations    *int     `toml:"iterations"`
	LinLog        *bool    `toml:"lin_log"`
	KGravity      *float64 `toml:"k_gravity"`
	StrongGravity *bool    `toml:"strong_gravity"`
	KRepulsive    *float64 `toml:"k_repulsive"`
	Exponent      *float64 `toml:"exponent"`
	NoHubs        *bool    `toml:"no_hubs"`
	Tolerance     *float64 `toml:"tolerance"`
	KSpeed        *float64 `toml:"k_speed"`
	Seed          *int64   `toml:"seed"`
	Workers       *int     `toml:"workers"`
}

func (t layoutTable) config() graphlayout.Config {
	return graphlayout.Config{
		NIter:         t.Iterations,
		LinLog:        t.LinLog,
		KGravity:      t.KGravity,
		StrongGravity: t.StrongGravity,
		KRepulsive:    t.KRepulsive,
		Exponent:      t.Exponent,
		NoHubs:        t.NoHubs,
		Tolerance:     t.Tolerance,
		KSpeed:        t.KSpeed,
		Seed:          t.Seed,
		Workers:       t.Workers,
	}
}

// loadConfigFile decodes a TOML file into a layout config. Unknown keys are
// rejected so typos do not go unnoticed.
func loadConfigFile(path string) (graphlayout.Config, error) {
	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return graphlayout.Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return graphlayout.Config{}, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	conf := fc.Layout.config()
	if err := conf.Validate(); err != nil {
		return graphlayout.Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return conf, nil
}
