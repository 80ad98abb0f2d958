// Copyright 2020 Snowfork
// SPDX-License-Identifier: LGPL-3.0-only

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sora-xor/bridge-relayer/cmd/run"
)

var rootCmd = &cobra.Command{
	Use:          "bridge-relayer",
	Short:        "bridge-relayer connects Main, a peer parachain, EVM chains and TON",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(run.Command())
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
