// Package config defines the on-disk configuration shapes read by every
// relay direction's command, decoded with viper/mapstructure the way the
// teacher's relay commands do (spec §6 "Configuration").
package config

import "time"

// EthereumConfig configures a connection to an EVM chain gateway.
type EthereumConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ChainID     uint64 `mapstructure:"chain-id"`
	GasFeeCap   uint64 `mapstructure:"gas-fee-cap"`
	GasTipCap   uint64 `mapstructure:"gas-tip-cap"`
	GasLimit    uint64 `mapstructure:"gas-limit"`
	ScanBlocks  uint64 `mapstructure:"scan-blocks"`
	Descendants uint64 `mapstructure:"descendants-until-final"`
}

// SubstrateConfig configures a connection to a Substrate-family chain
// (Main or a peer parachain). The commands dial Endpoint only; the
// Endpoints list is decoded but not read by any command.
type SubstrateConfig struct {
	Endpoint             string   `mapstructure:"endpoint"`
	Endpoints            []string `mapstructure:"endpoints"`
	MaxWatchedExtrinsics int64    `mapstructure:"max-watched-extrinsics"`
	MaxBatchCallSize     int64    `mapstructure:"max-batch-call-size"`
}

// ParachainConfig is a SubstrateConfig alias kept distinct so relay
// commands can name "source" and "sink" chains without ambiguity.
type ParachainConfig = SubstrateConfig

// TonConfig configures the HTTP-API endpoints used to reach a TON node
// (spec §2 "TON gateway" — no official Go SDK exists, so this talks the
// same liteserver-proxy HTTP API wallets and explorers use).
type TonConfig struct {
	Endpoint   string             `mapstructure:"endpoint"`
	Endpoints  []string           `mapstructure:"endpoints"`
	ApiKey     string             `mapstructure:"api-key"`
	Network    string             `mapstructure:"network"`
	Channel    TonChannelConfig   `mapstructure:"channel"`
}

// TonChannelConfig names the TON-side channel contract address this
// gateway watches/writes, given TON addresses are workchain+hash pairs
// rather than a single 20-byte value.
type TonChannelConfig struct {
	Workchain int8   `mapstructure:"workchain"`
	Address   string `mapstructure:"address"`
}

// Config is the per-direction config file shape (spec §6): every relay
// direction command loads one of these, populating only the chain sections
// its own direction needs (an EVM-only direction leaves Ton/Parachain at
// their zero values).
type Config struct {
	Substrate SubstrateConfig `mapstructure:"substrate"`
	Parachain ParachainConfig `mapstructure:"parachain"`
	Evm       EthereumConfig  `mapstructure:"evm"`
	Ton       TonConfig       `mapstructure:"ton"`

	// ChannelID names the EVM/TON channel contract address, or the
	// Substrate-family counterpart network id, this direction relays
	// against — one hex/string value, whichever the direction needs.
	ChannelID string `mapstructure:"channel-id"`

	// MainNetworkId is Main's own SubNetworkId, the registry key every
	// direction terminating on Main uses for peers(net)/approvals(net,_)
	// (spec §3's "Approval store ... keyed by receiver_network_id").
	MainNetworkId uint32 `mapstructure:"main-network-id"`

	// ParachainNetworkId is the peer parachain's SubNetworkId, used by
	// the Main↔Parachain direction.
	ParachainNetworkId uint32 `mapstructure:"parachain-network-id"`

	// Interval is how often the relay engine ticks (spec §4.1's "on a
	// fixed interval"); defaults applied by the command if zero.
	Interval time.Duration `mapstructure:"interval"`
}
