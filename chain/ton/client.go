package ton

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/sora-xor/bridge-relayer/commitment"
	"github.com/sora-xor/bridge-relayer/config"
	"github.com/sora-xor/bridge-relayer/network"
	"github.com/sora-xor/bridge-relayer/transport"
)

// outboundMessageTag is the BoC tag prefixing a channel contract's outbound
// message body (spec §6): `nonce:uint64, message:^cell, source:MsgAddress`.
const outboundMessageTag uint32 = 0xffc180ad

// ErrCommitmentNotFound mirrors chain/substrate's sentinel for the TON
// source: the requested nonce has not appeared in any polled transaction
// history yet.
var ErrCommitmentNotFound = fmt.Errorf("ton: commitment not found for nonce")

// Client is the typed TON gateway: an HTTP-API wrapper over a channel
// contract's get-method and transaction-history endpoints, implementing
// relay.SourceSide for the TON → Main direction.
type Client struct {
	transport      *transport.RotationTransport
	channelAddress string
	workchain      int8
	archival       bool

	mu             sync.Mutex
	inboundByNonce map[uint64]commitment.TONInbound
	highestNonce   uint64
	seenTxHashes   map[string]struct{}
}

// NewClient builds a Client over cfg's endpoint list, falling back to
// cfg.Endpoint when the list is empty; it fails if neither is set.
func NewClient(cfg *config.TonConfig) (*Client, error) {
	urls := cfg.Endpoints
	if len(urls) == 0 && cfg.Endpoint != "" {
		urls = []string{cfg.Endpoint}
	}
	var httpClient *http.Client
	if cfg.ApiKey != "" {
		httpClient = &http.Client{Transport: apiKeyTransport{key: cfg.ApiKey}}
	}
	rt, err := transport.NewRotationTransport(urls, httpClient)
	if err != nil {
		return nil, fmt.Errorf("ton: %w", err)
	}
	return &Client{
		transport:      rt,
		channelAddress: cfg.Channel.Address,
		workchain:      cfg.Channel.Workchain,
		archival:       true,
		inboundByNonce: make(map[uint64]commitment.TONInbound),
		seenTxHashes:   make(map[string]struct{}),
	}, nil
}

type apiKeyTransport struct{ key string }

func (t apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-API-Key", t.key)
	return http.DefaultTransport.RoundTrip(req)
}

// RunGetMethod calls a get-method on addr via the liteserver-proxy HTTP API,
// implementing spec §4.5's `run_get_method(addr, method, ...) → u64` for
// TON sources ("outboundNonce"|"seqno").
func (c *Client) RunGetMethod(ctx context.Context, addr, method string, stack []interface{}) (uint64, error) {
	reqBody, err := json.Marshal(getMethodRequest{Address: addr, Method: method, Stack: stack})
	if err != nil {
		return 0, err
	}
	respBody, err := c.transport.Post(ctx, "application/json", reqBody)
	if err != nil {
		return 0, fmt.Errorf("runGetMethod(%s,%s): %w", addr, method, err)
	}
	var resp getMethodResponse
	if err := unmarshal(respBody, &resp); err != nil {
		return 0, fmt.Errorf("decode runGetMethod response: %w", err)
	}
	if !resp.Ok {
		return 0, fmt.Errorf("runGetMethod(%s,%s): %s", addr, method, resp.Error)
	}
	return parseIntStackTop(resp.Result.Stack)
}

// GetTransactions fetches a channel's transaction history, implementing
// spec §4.5's `transactions(channel, archival) → [Tx]` for TON sources.
func (c *Client) GetTransactions(ctx context.Context, channel string, archival bool) ([]Transaction, error) {
	reqBody, err := json.Marshal(map[string]interface{}{
		"address":  channel,
		"archival": archival,
		"limit":    100,
	})
	if err != nil {
		return nil, err
	}
	respBody, err := c.transport.Post(ctx, "application/json", reqBody)
	if err != nil {
		return nil, fmt.Errorf("getTransactions(%s): %w", channel, err)
	}
	var resp getTransactionsResponse
	if err := unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decode getTransactions response: %w", err)
	}
	if !resp.Ok {
		return nil, fmt.Errorf("getTransactions(%s): %s", channel, resp.Error)
	}
	return resp.Result, nil
}

// SendBocReturnHash submits a signed external message, implementing
// spec §4.5's `sendBocReturnHash`.
func (c *Client) SendBocReturnHash(ctx context.Context, boc []byte) (string, error) {
	reqBody, err := json.Marshal(sendBocRequest{Boc: base64.StdEncoding.EncodeToString(boc)})
	if err != nil {
		return "", err
	}
	respBody, err := c.transport.Post(ctx, "application/json", reqBody)
	if err != nil {
		return "", fmt.Errorf("sendBocReturnHash: %w", err)
	}
	var resp sendBocResponse
	if err := unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("decode sendBocReturnHash response: %w", err)
	}
	if !resp.Ok {
		return "", fmt.Errorf("sendBocReturnHash: %s", resp.Error)
	}
	return resp.Result.Hash, nil
}

// refresh polls the channel's transaction history and folds newly observed
// outbound messages into the nonce-indexed view CommitmentByNonce serves
// from, deduplicating by transaction hash since TON history endpoints may
// re-return overlapping pages across polls.
func (c *Client) refresh(ctx context.Context) error {
	txs, err := c.GetTransactions(ctx, c.channelAddress, c.archival)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, tx := range txs {
		if _, seen := c.seenTxHashes[tx.TransactionID.Hash]; seen {
			continue
		}
		c.seenTxHashes[tx.TransactionID.Hash] = struct{}{}

		for _, msg := range tx.OutMsgs {
			in, err := parseOutboundMessage(msg, c.workchain, tx.TransactionID.Hash)
			if err != nil {
				continue
			}
			c.inboundByNonce[in.NonceValue] = in
			if in.NonceValue > c.highestNonce {
				c.highestNonce = in.NonceValue
			}
		}
	}
	return nil
}

// OutboundNonce implements relay.SourceSide.
func (c *Client) OutboundNonce(ctx context.Context, dstNet network.GenericNetworkId) (uint64, error) {
	if err := c.refresh(ctx); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.highestNonce, nil
}

// CommitmentByNonce implements relay.SourceSide.
func (c *Client) CommitmentByNonce(ctx context.Context, dstNet network.GenericNetworkId, nonce uint64) (commitment.GenericCommitment, error) {
	if err := c.refresh(ctx); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	in, ok := c.inboundByNonce[nonce]
	if !ok {
		return nil, fmt.Errorf("nonce %d: %w", nonce, ErrCommitmentNotFound)
	}
	return in, nil
}

// parseOutboundMessage decodes a channel's wallet-message body (BoC tag
// 0xffc180ad, `nonce:uint64, message:^cell, source:MsgAddress`) into a
// TONInbound commitment. The cell reference and MsgAddress are read as flat
// trailing bytes rather than through a full TON cell parser (see
// DESIGN.md): the channel contract's own serialization is a fixed, known
// layout this relayer controls both ends of.
func parseOutboundMessage(msg OutMessage, workchain int8, txID string) (commitment.TONInbound, error) {
	raw, err := base64.StdEncoding.DecodeString(msg.Message)
	if err != nil {
		return commitment.TONInbound{}, err
	}
	if len(raw) < 12 {
		return commitment.TONInbound{}, fmt.Errorf("ton: message body too short")
	}
	tag := binary.BigEndian.Uint32(raw[0:4])
	if tag != outboundMessageTag {
		return commitment.TONInbound{}, fmt.Errorf("ton: unexpected message tag %#x", tag)
	}
	nonce := binary.BigEndian.Uint64(raw[4:12])
	payload := append([]byte(nil), raw[12:]...)

	source, err := parseAddress(msg.Source, workchain)
	if err != nil {
		return commitment.TONInbound{}, err
	}
	channel, err := parseAddress(msg.Destination, workchain)
	if err != nil {
		return commitment.TONInbound{}, err
	}

	return commitment.TONInbound{
		NonceValue:    nonce,
		Source:        source,
		Channel:       channel,
		TransactionID: txID,
		Payload:       payload,
	}, nil
}

// parseAddress converts a "workchain:hex" or raw-form TON address string
// into the canonical TonAddress.
func parseAddress(addr string, defaultWorkchain int8) (commitment.TonAddress, error) {
	parts := strings.SplitN(addr, ":", 2)
	if len(parts) != 2 {
		return commitment.TonAddress{}, fmt.Errorf("ton: malformed address %q", addr)
	}
	wc, err := strconv.ParseInt(parts[0], 10, 8)
	if err != nil {
		wc = int64(defaultWorkchain)
	}
	hexPart := strings.TrimPrefix(parts[1], "0x")
	decoded, err := hex.DecodeString(hexPart)
	if err != nil || len(decoded) != 32 {
		return commitment.TonAddress{}, fmt.Errorf("ton: malformed address hash %q", addr)
	}
	var out [32]byte
	copy(out[:], decoded)
	return commitment.TonAddress{Workchain: int8(wc), Address: out}, nil
}

func parseIntStackTop(stack [][]interface{}) (uint64, error) {
	if len(stack) == 0 {
		return 0, fmt.Errorf("ton: empty get-method stack")
	}
	top := stack[0]
	if len(top) != 2 {
		return 0, fmt.Errorf("ton: malformed stack entry")
	}
	val, ok := top[1].(string)
	if !ok {
		return 0, fmt.Errorf("ton: expected hex int string in stack entry")
	}
	val = strings.TrimPrefix(val, "0x")
	n, err := strconv.ParseUint(val, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("ton: parse stack int %q: %w", val, err)
	}
	return n, nil
}
