package ephem

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config names the kernel files an engine loads and the options it runs
// with. It is validated once at construction; the engine never re-reads it.
type Config struct {
	// SPKPaths are the binary SPK kernels, tried in order at query time.
	SPKPaths []string
	// LSKPath is the leap-second text kernel. Required.
	LSKPath string
	// EOPPath is the IERS finals2000A file for UT1. Optional; sidereal-time
	// dependent computations fail without it.
	EOPPath string
}

func (c Config) validate() error {
	if len(c.SPKPaths) == 0 {
		return fmt.Errorf("%w: at least one SPK kernel is required", ErrInvalidConfig)
	}
	for i, p := range c.SPKPaths {
		if p == "" {
			return fmt.Errorf("%w: SPK path %d is empty", ErrInvalidConfig, i)
		}
	}
	if c.LSKPath == "" {
		return fmt.Errorf("%w: LSK path is empty", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads a TOML configuration file:
//
//	[kernels]
//	spk = ["de442s.bsp"]
//	lsk = "naif0012.tls"
//	eop = "finals2000A.all"   # optional
//
// The path is explicit by design: the engine reads no environment
// variables.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	cfg := Config{
		SPKPaths: v.GetStringSlice("kernels.spk"),
		LSKPath:  v.GetString("kernels.lsk"),
		EOPPath:  v.GetString("kernels.eop"),
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
