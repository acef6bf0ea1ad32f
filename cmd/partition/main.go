// Command partition is a thin driver around the partition-core pipeline:
// it loads a JSON operation-graph fixture and a YAML directive file, runs
// one Snapshot, and prints the resulting Groups as YAML.
package main

import (
	"github.com/katalvlaran/partition-core/cmd/partition/cmd"
)

func main() {
	cmd.Execute()
}
