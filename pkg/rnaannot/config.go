// 19 Oct 2026

package rnaannot

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/andrew-torda/rnaannot/pkg/cycle"
	"github.com/andrew-torda/rnaannot/pkg/layer"
)

// Config is everything that can be set in a file. Flags given on the
// command line win.
type Config struct {
	LogFile    string      `toml:"log_file"`
	Chains     []string    `toml:"chains"`
	Mask       string      `toml:"mask"`
	Annot      []string    `toml:"annot"`
	DotBracket string      `toml:"dot_bracket"`
	Plot       string      `toml:"plot"`
	Strict     bool        `toml:"strict"`
	Layers     LayerConfig `toml:"layers"`
	Cycles     CycleConfig `toml:"cycles"`
}

// LayerConfig goes to layer.Options
type LayerConfig struct {
	ExactMax  int    `toml:"exact_max"`
	MaxLayers int    `toml:"max_layers"`
	Combined  int    `toml:"combined"`
	Split     int    `toml:"split"`
	MaxGap    int    `toml:"max_gap"`
	GapFill   bool   `toml:"gap_fill"`
	SeqGap    string `toml:"seq_gap"`
	StructGap string `toml:"struct_gap"`
	Loose     bool   `toml:"loose"`
}

// CycleConfig goes to cycle.Options
type CycleConfig struct {
	MaxSize    int  `toml:"max_size"`
	MultiChain bool `toml:"multi_chain"`
}

// DefaultConfig has the package defaults
func DefaultConfig() Config {
	lo, co := layer.DefaultOptions, cycle.DefaultOptions
	return Config{
		Layers: LayerConfig{
			ExactMax:  lo.ExactMax,
			MaxLayers: lo.MaxLayers,
			Combined:  lo.NCombined,
			Split:     lo.NSplit,
			MaxGap:    lo.MaxGap,
			GapFill:   lo.GapFill,
			SeqGap:    string(lo.SeqGap),
			StructGap: string(lo.StructGap),
			Loose:     lo.Loose,
		},
		Cycles: CycleConfig{MaxSize: co.MaxSize, MultiChain: !co.SingleChain},
	}
}

// LoadConfig reads a TOML file on top of cfg. Keys not in the file keep
// their values. Unknown keys are an error.
func LoadConfig(fname string, cfg *Config) error {
	fp, err := os.Open(fname)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer fp.Close()
	dec := toml.NewDecoder(fp).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("config %s: %w", fname, err)
	}
	return cfg.check()
}

// check the gap characters are single bytes
func (c *Config) check() error {
	for _, s := range []string{c.Layers.SeqGap, c.Layers.StructGap} {
		if len(s) != 1 {
			return fmt.Errorf("gap character %q must be one character", s)
		}
	}
	return nil
}

// layerOpts converts to what the layer package wants
func (c *Config) layerOpts() layer.Options {
	l := c.Layers
	return layer.Options{
		ExactMax:  l.ExactMax,
		MaxLayers: l.MaxLayers,
		NCombined: l.Combined,
		NSplit:    l.Split,
		MaxGap:    l.MaxGap,
		GapFill:   l.GapFill,
		SeqGap:    l.SeqGap[0],
		StructGap: l.StructGap[0],
		Loose:     l.Loose,
	}
}

func (c *Config) cycleOpts() cycle.Options {
	return cycle.Options{MaxSize: c.Cycles.MaxSize, SingleChain: !c.Cycles.MultiChain}
}
