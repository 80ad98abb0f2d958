// Package shared holds the command-wiring helpers every direction's
// cobra command shares: config loading, relayer key resolution, and
// signal-aware engine supervision.
package shared

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/sora-xor/bridge-relayer/chain/evm"
	"github.com/sora-xor/bridge-relayer/config"
	"github.com/sora-xor/bridge-relayer/network"
	"github.com/sora-xor/bridge-relayer/relay"
)

// LoadConfig reads the per-direction config file named by configFile into cfg.
func LoadConfig(configFile string, cfg *config.Config) error {
	viper.SetConfigFile(configFile)
	if err := viper.ReadInConfig(); err != nil {
		return err
	}
	return viper.Unmarshal(cfg)
}

// ResolveRelayerKey loads this process's peer signing key and returns both
// its public identity and a relay.Signer closure over it. Every direction
// uses the same secp256k1 identity for message signing (spec §3's
// EcdsaPublic/EcdsaSignature are chain-family-agnostic), distinct from
// whatever chain-specific key a direction uses to pay for extrinsics/txs.
func ResolveRelayerKey(privateKey, privateKeyFile string) (network.EcdsaPublic, relay.Signer, error) {
	kp, err := evm.ResolvePrivateKey(privateKey, privateKeyFile)
	if err != nil {
		return network.EcdsaPublic{}, nil, err
	}
	return kp.Self(), kp.SignDigest, nil
}

// RunEngine wires a relay.Engine's lifecycle: an errgroup running the
// engine alongside a signal watcher and any background tasks build
// registers on eg (connection watchers, extrinsic pools), clean shutdown on
// SIGINT/SIGTERM, fatal log + non-zero exit on unhandled error.
func RunEngine(name string, build func(ctx context.Context, eg *errgroup.Group) (*relay.Engine, error)) error {
	ctx, cancel := context.WithCancel(context.Background())
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		notify := make(chan os.Signal, 1)
		signal.Notify(notify, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig := <-notify:
			logrus.WithField("signal", sig.String()).Info("received signal")
			cancel()
		}
		return nil
	})

	engine, err := build(ctx, eg)
	if err != nil {
		return err
	}

	eg.Go(func() error {
		return engine.Run(ctx)
	})

	if err := eg.Wait(); err != nil && ctx.Err() == nil {
		logrus.WithField("direction", name).WithError(err).Fatal("unhandled error")
		return err
	}
	return nil
}
