// Package tontomain wires the TON → Main relay direction's command-line
// entry point (spec §4.1, §6).
package tontomain

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sora-xor/bridge-relayer/chain/substrate"
	"github.com/sora-xor/bridge-relayer/chain/ton"
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
	tonNetworkId      uint8
)

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ton-to-main",
		Short: "Relay commitments from a TON channel to Main",
		Args:  cobra.ExactArgs(0),
		RunE:  run,
	}
	cmd.Flags().StringVar(&configFile, "config", "", "Path to configuration file")
	cmd.MarkFlagRequired("config")
	cmd.Flags().StringVar(&relayerPrivateKey, "relayer-private-key", "", "Peer signing key (secp256k1)")
	cmd.Flags().StringVar(&relayerKeyFile, "relayer-private-key-file", "", "File containing the peer signing key")
	cmd.Flags().StringVar(&mainPrivateKey, "main-private-key", "", "Main account key (sr25519) for submitting extrinsics")
	cmd.Flags().StringVar(&mainKeyFile, "main-private-key-file", "", "File containing the Main account key")
	cmd.Flags().Uint8Var(&tonNetworkId, "ton-network-id", 0, "GenericNetworkId::TON variant identifying this TON network")
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

	return shared.RunEngine("ton-to-main", func(ctx context.Context, eg *errgroup.Group) (*relay.Engine, error) {
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

		tonClient, err := ton.NewClient(&cfg.Ton)
		if err != nil {
			return nil, err
		}

		registry := signer.NewRegistry(mainClient)

		interval := cfg.Interval
		if interval == 0 {
			interval = 10 * time.Second
		}

		return relay.TONToMain(tonClient, mainClient, registry, network.TON(network.TonNetworkId(tonNetworkId)), network.Sub(cfg.MainNetworkId), self, sign, interval), nil
	})
}
