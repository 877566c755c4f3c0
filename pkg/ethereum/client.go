package ethereum

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/chainsafe/insured-bridge/internal/metrics"
	"github.com/chainsafe/insured-bridge/pkg/config"
)

// Backend is the part of the JSON-RPC client used by the bridge
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// Client reads the local chain head and pays out native value from the payer account
type Client struct {
	config      *config.EthereumConfig
	backend     Backend
	closer      func()
	privateKey  *ecdsa.PrivateKey
	address     common.Address
	chainID     *big.Int
	maxGasPrice *big.Int
	logger      *zap.Logger

	// payouts from one account must not race on the pending nonce
	sendMu sync.Mutex
}

// NewClient dials the configured RPC endpoint
func NewClient(ctx context.Context, cfg *config.EthereumConfig, logger *zap.Logger) (*Client, error) {
	rpc, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ethereum RPC: %w", err)
	}

	c, err := NewClientWithBackend(ctx, cfg, rpc, logger)
	if err != nil {
		rpc.Close()
		return nil, err
	}
	c.closer = rpc.Close

	logger.Info("Connected to Ethereum",
		zap.Stringer("chain_id", c.chainID),
		zap.String("rpc_url", cfg.RPCURL),
		zap.String("payer_address", c.address.Hex()))
	return c, nil
}

// NewClientWithBackend creates a client over an existing backend
func NewClientWithBackend(ctx context.Context, cfg *config.EthereumConfig, backend Backend, logger *zap.Logger) (*Client, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PayerPrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to load private key: %w", err)
	}

	var maxGasPrice *big.Int
	if cfg.MaxGasPrice != "" {
		v, ok := new(big.Int).SetString(cfg.MaxGasPrice, 10)
		if !ok || v.Sign() <= 0 {
			return nil, fmt.Errorf("invalid max gas price %q", cfg.MaxGasPrice)
		}
		maxGasPrice = v
	}

	chainID := big.NewInt(cfg.ChainID)
	if cfg.ChainID == 0 {
		chainID, err = backend.ChainID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get chain id: %w", err)
		}
	}

	return &Client{
		config:      cfg,
		backend:     backend,
		closer:      func() {},
		privateKey:  privateKey,
		address:     crypto.PubkeyToAddress(privateKey.PublicKey),
		chainID:     chainID,
		maxGasPrice: maxGasPrice,
		logger:      logger,
	}, nil
}

// Close closes the RPC connection
func (c *Client) Close() {
	c.closer()
}

// Address returns the payer account
func (c *Client) Address() common.Address {
	return c.address
}

// CurrentBlock returns the latest block number
func (c *Client) CurrentBlock(ctx context.Context) (uint64, error) {
	header, err := c.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block: %w", err)
	}
	return header.Number.Uint64(), nil
}

// Balance returns the payer account balance at the latest block
func (c *Client) Balance(ctx context.Context) (*big.Int, error) {
	return c.backend.BalanceAt(ctx, c.address, nil)
}

// Pay sends amount wei to recipient. It returns once the transaction is accepted by
// the node, not when it is mined.
func (c *Client) Pay(ctx context.Context, recipient common.Address, amount *big.Int) error {
	chain := strconv.FormatUint(c.chainID.Uint64(), 10)

	tx, err := c.send(ctx, recipient, amount)
	if err != nil {
		metrics.TransactionsSent.WithLabelValues(chain, "failed").Inc()
		return err
	}
	metrics.TransactionsSent.WithLabelValues(chain, "success").Inc()

	c.logger.Info("Payout transaction submitted",
		zap.String("tx_hash", tx.Hash().Hex()),
		zap.String("recipient", recipient.Hex()),
		zap.Stringer("amount", amount),
		zap.Uint64("nonce", tx.Nonce()))
	return nil
}

func (c *Client) send(ctx context.Context, recipient common.Address, amount *big.Int) (*types.Transaction, error) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	nonce, err := c.backend.PendingNonceAt(ctx, c.address)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}
	gasPrice, err := c.gasPrice(ctx)
	if err != nil {
		return nil, err
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &recipient,
		Value:    amount,
		Gas:      c.config.GasLimit,
		GasPrice: gasPrice,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign payout: %w", err)
	}
	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("failed to submit payout transaction: %w", err)
	}
	return signed, nil
}

func (c *Client) gasPrice(ctx context.Context) (*big.Int, error) {
	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest gas price: %w", err)
	}
	if c.maxGasPrice != nil && gasPrice.Cmp(c.maxGasPrice) > 0 {
		c.logger.Warn("Suggested gas price exceeds maximum",
			zap.String("suggested", gasPrice.String()),
			zap.String("max", c.maxGasPrice.String()))
		return new(big.Int).Set(c.maxGasPrice), nil
	}
	return gasPrice, nil
}
