// Package maintoparachain wires the Main → peer parachain relay direction's
// command-line entry point (spec §4.1, §6).
package maintoparachain

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sora-xor/bridge-relayer/chain/substrate"
	"github.com/sora-xor/bridge-relayer/cmd/run/shared"
	"github.com/sora-xor/bridge-relayer/config"
	"github.com/sora-xor/bridge-relayer/network"
	"github.com/sora-xor/bridge-relayer/relay"
	"github.com/sora-xor/bridge-relayer/signer"
)

var (
	configFile        string
	relayerPrivateKey string
	relayerKeyFile    string
	mainPrivateKey    string
	mainKeyFile       string
	parachainKey      string
	parachainKeyFile  string
)

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "main-to-parachain",
		Short: "Relay commitments from Main to the peer parachain",
		Args:  cobra.ExactArgs(0),
		RunE:  run,
	}
	cmd.Flags().StringVar(&configFile, "config", "", "Path to configuration file")
	cmd.MarkFlagRequired("config")
	cmd.Flags().StringVar(&relayerPrivateKey, "relayer-private-key", "", "Peer signing key (secp256k1)")
	cmd.Flags().StringVar(&relayerKeyFile, "relayer-private-key-file", "", "File containing the peer signing key")
	cmd.Flags().StringVar(&mainPrivateKey, "main-private-key", "", "Main account key (sr25519) for reading storage")
	cmd.Flags().StringVar(&mainKeyFile, "main-private-key-file", "", "File containing the Main account key")
	cmd.Flags().StringVar(&parachainKey, "parachain-private-key", "", "Parachain account key (sr25519) for submitting extrinsics")
	cmd.Flags().StringVar(&parachainKeyFile, "parachain-private-key-file", "", "File containing the parachain account key")
	return cmd
}

func run(_ *cobra.Command, _ []string) error {
	var cfg config.Config
	if err := shared.LoadConfig(configFile, &cfg); err != nil {
		return err
	}

	self, sign, err := shared.ResolveRelayerKey(relayerPrivateKey, relayerKeyFile)
	if err != nil {
		return err
	}

	mainKeypair, err := substrate.ResolvePrivateKey(mainPrivateKey, mainKeyFile)
	if err != nil {
		return err
	}

	parachainKeypair, err := substrate.ResolvePrivateKey(parachainKey, parachainKeyFile)
	if err != nil {
		return err
	}

	return shared.RunEngine("main-to-parachain", func(ctx context.Context, eg *errgroup.Group) (*relay.Engine, error) {
		mainConn := substrate.NewConnection(cfg.Substrate.Endpoint, mainKeypair.AsKeyringPair())
		if err := mainConn.Connect(ctx); err != nil {
			return nil, err
		}
		mainConn.WatchRuntimeUpgrades(ctx, eg)
		mainWriter := substrate.NewWriter(mainConn, cfg.Substrate.MaxWatchedExtrinsics, cfg.Substrate.MaxBatchCallSize)
		if err := mainWriter.Start(ctx, eg); err != nil {
			return nil, err
		}
		mainClient := substrate.NewClient(mainConn, substrate.MainPallets, mainWriter)

		parachainConn := substrate.NewConnection(cfg.Parachain.Endpoint, parachainKeypair.AsKeyringPair())
		if err := parachainConn.Connect(ctx); err != nil {
			return nil, err
		}
		parachainWriter := substrate.NewWriter(parachainConn, cfg.Parachain.MaxWatchedExtrinsics, cfg.Parachain.MaxBatchCallSize)
		if err := parachainWriter.Start(ctx, eg); err != nil {
			return nil, err
		}
		parachainClient := substrate.NewClient(parachainConn, substrate.ParachainPallets, parachainWriter)

		registry := signer.NewRegistry(mainClient)

		interval := cfg.Interval
		if interval == 0 {
			interval = 10 * time.Second
		}

		return relay.MainToParachain(mainClient, mainClient, parachainClient, registry, network.Sub(cfg.MainNetworkId), network.Sub(cfg.ParachainNetworkId), self, sign, interval), nil
	})
}
