package cmd

import (
	"github.com/katalvlaran/partition-core/passes"
)

// groupReport is the YAML-friendly rendering of one surviving group.
type groupReport struct {
	ID             string   `yaml:"id"`
	Content        []string `yaml:"content"`
	RepeatID       string   `yaml:"repeat_id,omitempty"`
	NoFold         bool     `yaml:"nofold,omitempty"`
	AvoidedDevices []string `yaml:"avoided_devices,omitempty"`
	SpecialTags    []string `yaml:"special_tags,omitempty"`
}

// report is the top-level YAML document run prints to stdout.
type report struct {
	Groups  []groupReport          `yaml:"groups"`
	Matches map[string][][]string `yaml:"matches,omitempty"`
}

func toReport(exp *passes.Export) report {
	out := report{Matches: exp.Matches}
	for _, gid := range exp.Registry.SortedIDs() {
		g := exp.Registry.Groups[gid]
		gr := groupReport{
			ID:          gid,
			Content:     g.ContentIDs(),
			NoFold:      g.NoFold,
			SpecialTags: g.SpecialTags,
		}
		if g.RepeatTag != nil {
			gr.RepeatID = g.RepeatTag.ID.String()
		}
		for d := range g.AvoidedDevices {
			gr.AvoidedDevices = append(gr.AvoidedDevices, d)
		}
		out.Groups = append(out.Groups, gr)
	}
	return out
}
