package svd

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// BitBandRegion pairs an addressable region with its bit-band alias
// base, for example the classic Cortex-M peripheral region
// (0x40000000, 0x00100000, 0x42000000).
type BitBandRegion struct {
	// AddressableBase is the start of the bit-band addressable region.
	AddressableBase uint64 `yaml:"addressableBase"`

	// AddressableSize is the region size in bytes.
	AddressableSize uint64 `yaml:"addressableSize"`

	// AliasBase is the start of the alias region the bits map into.
	AliasBase uint64 `yaml:"aliasBase"`
}

// Contains returns true if addr lies inside the addressable region.
func (r BitBandRegion) Contains(addr uint64) bool {
	return addr >= r.AddressableBase && addr-r.AddressableBase < r.AddressableSize
}

// Config controls a parse. The zero value is valid: bit-band
// generation off, logging off.
type Config struct {
	// EnableBitBand turns on bit-band alias generation for registers
	// inside one of the BitBandRegions.
	EnableBitBand bool `yaml:"enableBitBand"`

	// BitBandRegions lists the bit-band region pairs of the silicon
	// family. Regions are consulted in order; the first region
	// containing a register's address wins. There is no default.
	BitBandRegions []BitBandRegion `yaml:"bitBandRegions"`

	// Logger receives debug output from the pipeline stages.
	// A nil Logger disables logging.
	Logger *slog.Logger `yaml:"-"`
}

// Validate checks the configuration. Bit-band regions are checked only
// when EnableBitBand is set, since they are ignored otherwise.
func (c *Config) Validate() error {
	if !c.EnableBitBand {
		return nil
	}
	for i, r := range c.BitBandRegions {
		if r.AddressableSize == 0 {
			return &ValidationError{
				Kind:   ErrBitBandConfig,
				Detail: fmt.Sprintf("region %d: addressable size is zero", i),
			}
		}
		if r.AliasBase%4 != 0 {
			return &ValidationError{
				Kind:   ErrBitBandConfig,
				Detail: fmt.Sprintf("region %d: alias base %#x is not word aligned", i, r.AliasBase),
			}
		}
		if r.AddressableBase+r.AddressableSize < r.AddressableBase {
			return &ValidationError{
				Kind:   ErrBitBandConfig,
				Detail: fmt.Sprintf("region %d: addressable region wraps the address space", i),
			}
		}
		// Every byte of the region maps to 32 alias bytes.
		if r.AddressableSize > (^uint64(0)-r.AliasBase)/32 {
			return &ValidationError{
				Kind:   ErrBitBandConfig,
				Detail: fmt.Sprintf("region %d: alias region wraps the address space", i),
			}
		}
	}
	return nil
}

func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		// slog.DiscardHandler needs Go 1.24+; emulate it on older toolchains.
		return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return c.Logger
}

// ParseConfig parses a YAML configuration profile.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	return &cfg, nil
}

// LoadConfig reads and parses a YAML configuration profile from a file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data)
}
