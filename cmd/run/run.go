package run

import (
	"github.com/spf13/cobra"

	"github.com/sora-xor/bridge-relayer/cmd/run/evmtomain"
	"github.com/sora-xor/bridge-relayer/cmd/run/maintoevm"
	"github.com/sora-xor/bridge-relayer/cmd/run/maintoparachain"
	"github.com/sora-xor/bridge-relayer/cmd/run/maintoton"
	"github.com/sora-xor/bridge-relayer/cmd/run/parachaintomain"
	"github.com/sora-xor/bridge-relayer/cmd/run/tontomain"
)

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start a relay direction",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.AddCommand(maintoevm.Command())
	cmd.AddCommand(evmtomain.Command())
	cmd.AddCommand(maintoparachain.Command())
	cmd.AddCommand(parachaintomain.Command())
	cmd.AddCommand(tontomain.Command())
	cmd.AddCommand(maintoton.Command())

	return cmd
}
