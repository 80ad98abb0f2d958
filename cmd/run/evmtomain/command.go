// Package evmtomain wires the EVM → Main relay direction's command-line
// entry point: load config, dial both chains, build the engine, run it
// under signal-aware supervision (spec §4.1, §6).
package evmtomain

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sora-xor/bridge-relayer/chain/evm"
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
	evmPrivateKey     string
	evmKeyFile        string
)

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evm-to-main",
		Short: "Relay commitments from an EVM channel to Main",
		Args:  cobra.ExactArgs(0),
		RunE:  run,
	}
	cmd.Flags().StringVar(&configFile, "config", "", "Path to configuration file")
	cmd.MarkFlagRequired("config")
	cmd.Flags().StringVar(&relayerPrivateKey, "relayer-private-key", "", "Peer signing key (secp256k1)")
	cmd.Flags().StringVar(&relayerKeyFile, "relayer-private-key-file", "", "File containing the peer signing key")
	cmd.Flags().StringVar(&mainPrivateKey, "main-private-key", "", "Main account key (sr25519) for submitting extrinsics")
	cmd.Flags().StringVar(&mainKeyFile, "main-private-key-file", "", "File containing the Main account key")
	cmd.Flags().StringVar(&evmPrivateKey, "evm-private-key", "", "EVM account key (secp256k1) for watching the channel contract")
	cmd.Flags().StringVar(&evmKeyFile, "evm-private-key-file", "", "File containing the EVM account key")
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

	evmKeypair, err := evm.ResolvePrivateKey(evmPrivateKey, evmKeyFile)
	if err != nil {
		return err
	}

	return shared.RunEngine("evm-to-main", func(ctx context.Context, eg *errgroup.Group) (*relay.Engine, error) {
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

		evmConn := evm.NewConnection(&cfg.Evm, evmKeypair)
		if err := evmConn.Connect(ctx); err != nil {
			return nil, err
		}
		gateway, err := evm.NewGateway(evmConn, common.HexToAddress(cfg.ChannelID), network.EVM(cfg.Evm.ChainID))
		if err != nil {
			return nil, err
		}

		registry := signer.NewRegistry(mainClient)

		interval := cfg.Interval
		if interval == 0 {
			interval = 10 * time.Second
		}

		return relay.EVMToMain(gateway, mainClient, registry, network.EVM(cfg.Evm.ChainID), network.Sub(cfg.MainNetworkId), self, sign, interval), nil
	})
}
