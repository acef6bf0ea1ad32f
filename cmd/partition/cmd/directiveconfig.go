package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/katalvlaran/partition-core/directive"
)

// avoidEntry and isolateEntry mirror directive.Avoid/directive.Isolate in
// the mapstructure shape viper unmarshals YAML into.
type avoidEntry struct {
	Kind    string `mapstructure:"kind"`
	Pattern string `mapstructure:"pattern"`
	Device  string `mapstructure:"device"`
}

type isolateEntry struct {
	Pattern string `mapstructure:"pattern"`
	Tag     string `mapstructure:"tag"`
}

type directiveFile struct {
	MinGraphSize  int            `mapstructure:"min_graph_size"`
	KeepBlocks    int            `mapstructure:"keep_blocks"`
	KeepBlockSize int            `mapstructure:"keep_block_size"`
	Avoids        []avoidEntry   `mapstructure:"avoids"`
	Isolates      []isolateEntry `mapstructure:"isolates"`
	NoFolds       []string       `mapstructure:"nofolds"`
	PMMDims       []int          `mapstructure:"pmm_dims"`
}

// LoadDirectives reads a YAML directive file at path into a
// directive.PassContext. An empty path returns directive.Default().
func LoadDirectives(path string) (directive.PassContext, error) {
	if path == "" {
		return directive.Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return directive.PassContext{}, fmt.Errorf("read directive file: %w", err)
	}

	var f directiveFile
	if err := v.Unmarshal(&f); err != nil {
		return directive.PassContext{}, fmt.Errorf("unmarshal directive file: %w", err)
	}

	pc := directive.PassContext{
		MinGraphSize:  f.MinGraphSize,
		KeepBlocks:    f.KeepBlocks,
		KeepBlockSize: f.KeepBlockSize,
		NoFolds:       f.NoFolds,
		PMMDims:       make(map[int]struct{}, len(f.PMMDims)),
	}
	for _, d := range f.PMMDims {
		pc.PMMDims[d] = struct{}{}
	}
	for _, a := range f.Avoids {
		kind := directive.AvoidOp
		if a.Kind == "pattern" {
			kind = directive.AvoidPattern
		}
		pc.Avoids = append(pc.Avoids, directive.Avoid{Kind: kind, Pattern: a.Pattern, Device: a.Device})
	}
	for _, i := range f.Isolates {
		pc.Isolates = append(pc.Isolates, directive.Isolate{Pattern: i.Pattern, Tag: i.Tag})
	}

	return pc, nil
}
