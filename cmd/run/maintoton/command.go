// Package maintoton exists for CLI symmetry with the other five directions.
// Main → TON relaying is out of scope (spec §2's direction table marks it
// "Not covered here"); the command reports that instead of silently no-op'ing.
package maintoton

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sora-xor/bridge-relayer/relay"
)

func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "main-to-ton",
		Short: "Not implemented: Main to TON is outside this relayer's scope",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			return relay.MainToTON().Run(context.Background())
		},
	}
}
