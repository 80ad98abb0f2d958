// Copyright 2020 Snowfork
// SPDX-License-Identifier: LGPL-3.0-only

// Package evm provides typed access to an EVM chain's channel contract:
// dialing, transaction confirmation polling, and the log-scanning cursor
// that discovers new commitments (spec §2 "EVM gateway").
package evm

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	goEthereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"

	"github.com/sora-xor/bridge-relayer/config"
	"github.com/sora-xor/bridge-relayer/crypto/secp256k1"

	log "github.com/sirupsen/logrus"
)

type Connection struct {
	endpoint string
	kp       *secp256k1.Keypair
	client   *ethclient.Client
	chainID  *big.Int
	config   *config.EthereumConfig
}

type JsonError interface {
	Error() string
	ErrorCode() int
	ErrorData() interface{}
}

func NewConnection(cfg *config.EthereumConfig, kp *secp256k1.Keypair) *Connection {
	return &Connection{
		endpoint: cfg.Endpoint,
		kp:       kp,
		config:   cfg,
	}
}

func (co *Connection) Connect(ctx context.Context) error {
	client, err := ethclient.DialContext(ctx, co.endpoint)
	if err != nil {
		return err
	}

	chainID, err := client.NetworkID(ctx)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"endpoint": co.endpoint,
		"chainID":  chainID,
	}).Info("Connected to chain")

	co.client = client
	co.chainID = chainID

	return nil
}

func (co *Connection) Close() {
	if co.client != nil {
		co.client.Close()
	}
}

func (co *Connection) Client() *ethclient.Client {
	return co.client
}

func (co *Connection) Keypair() *secp256k1.Keypair {
	return co.kp
}

func (co *Connection) ChainID() *big.Int {
	return co.chainID
}

func (co *Connection) queryFailingError(ctx context.Context, hash common.Hash) error {
	tx, _, err := co.client.TransactionByHash(ctx, hash)
	if err != nil {
		return err
	}

	from, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		return err
	}

	params := goEthereum.CallMsg{
		From:     from,
		To:       tx.To(),
		Gas:      tx.Gas(),
		GasPrice: tx.GasPrice(),
		Value:    tx.Value(),
		Data:     tx.Data(),
	}

	log.WithFields(logrus.Fields{
		"from": from,
		"to":   tx.To(),
		"data": hex.EncodeToString(tx.Data()),
	}).Info("call info")

	_, err = co.client.CallContract(ctx, params, nil)
	return err
}

func (co *Connection) waitForTransaction(ctx context.Context, tx *types.Transaction, confirmations uint64) (*types.Receipt, error) {
	for {
		receipt, err := co.pollTransaction(ctx, tx, confirmations)
		if err != nil {
			return nil, err
		}
		if receipt != nil {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
}

func (co *Connection) pollTransaction(ctx context.Context, tx *types.Transaction, confirmations uint64) (*types.Receipt, error) {
	receipt, err := co.Client().TransactionReceipt(ctx, tx.Hash())
	if err != nil {
		if errors.Is(err, goEthereum.NotFound) {
			return nil, nil
		}
		return nil, err
	}

	latestHeader, err := co.Client().HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, err
	}

	if latestHeader.Number.Uint64()-receipt.BlockNumber.Uint64() >= confirmations {
		return receipt, nil
	}

	return nil, nil
}

// WatchTransaction blocks until a submitted transaction has accumulated
// confirmations confirmations, logging and returning the revert reason if
// it ultimately failed.
func (co *Connection) WatchTransaction(ctx context.Context, tx *types.Transaction, confirmations uint64) (*types.Receipt, error) {
	receipt, err := co.waitForTransaction(ctx, tx, confirmations)
	if err != nil {
		return nil, err
	}
	if receipt.Status != 1 {
		err = co.queryFailingError(ctx, receipt.TxHash)
		logFields := log.Fields{"txHash": tx.Hash().Hex()}
		if err != nil {
			logFields["error"] = err.Error()
			if jsonErr, ok := err.(JsonError); ok {
				logFields["code"] = fmt.Sprintf("%v", jsonErr.ErrorData())
			}
		}
		log.WithFields(logFields).Error("transaction failed")
		return receipt, err
	}
	return receipt, nil
}

// MakeTxOpts builds signed-transaction options from the configured gas
// parameters, reusing config.EthereumConfig directly rather than
// introducing a separate options struct.
func (co *Connection) MakeTxOpts(ctx context.Context) *bind.TransactOpts {
	chainID := co.ChainID()
	keypair := co.Keypair()

	options := bind.TransactOpts{
		From: keypair.CommonAddress(),
		Signer: func(_ common.Address, tx *types.Transaction) (*types.Transaction, error) {
			return types.SignTx(tx, types.LatestSignerForChainID(chainID), keypair.PrivateKey())
		},
		Context: ctx,
	}

	if co.config.GasFeeCap > 0 {
		options.GasFeeCap = new(big.Int).SetUint64(co.config.GasFeeCap)
	}
	if co.config.GasTipCap > 0 {
		options.GasTipCap = new(big.Int).SetUint64(co.config.GasTipCap)
	}
	if co.config.GasLimit > 0 {
		options.GasLimit = co.config.GasLimit
	}

	return &options
}
