package bridge

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/chainsafe/insured-bridge/internal/metrics"
	"github.com/chainsafe/insured-bridge/pkg/config"
	"github.com/chainsafe/insured-bridge/pkg/guard"
	"github.com/chainsafe/insured-bridge/pkg/liquidity"
	"github.com/chainsafe/insured-bridge/pkg/message"
	"github.com/chainsafe/insured-bridge/pkg/pricefeed"
	"github.com/chainsafe/insured-bridge/pkg/reorg"
	"github.com/chainsafe/insured-bridge/pkg/risk"
)

const (
	opInitiate         = "initiate_transfer"
	opReceive          = "receive_transfer"
	opDeposit          = "deposit_liquidity"
	opWithdraw         = "withdraw_liquidity"
	opClaim            = "claim_fees"
	opDepositInsurance = "deposit_insurance"
	opFinalize         = "process_finalized"
	opResume           = "resume"
)

const (
	directionOutbound = "outbound"
	directionInbound  = "inbound"
)

const bpsDenominator = 10_000

// Service defines the bridge operations exposed to the API and the dispatcher callback
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	InitiateTransfer(ctx context.Context, req *TransferRequest) (*TransferReceipt, error)
	ReceiveTransfer(ctx context.Context, origin uint64, payload []byte) error
	DepositLiquidity(ctx context.Context, provider common.Address, amount *big.Int) (*big.Int, error)
	WithdrawLiquidity(ctx context.Context, provider common.Address, shares *big.Int) (*big.Int, error)
	ClaimFees(ctx context.Context, provider common.Address) (*big.Int, error)
	DepositInsurance(ctx context.Context, amount *big.Int) (*big.Int, error)
	Position(ctx context.Context, provider common.Address) (*Position, error)
	ProcessFinalized(ctx context.Context) (int, error)
	ReorgedTransfers(ctx context.Context, origin uint64) ([]*reorg.ReorgedTransfer, error)
	Status(ctx context.Context) (*Status, error)
	Resume(ctx context.Context) error
}

// Option customizes the service.
type Option func(*bridgeService)

// WithDispatchValue sets the native value and hook metadata passed to every Dispatch.
func WithDispatchValue(value *big.Int, hookMetadata []byte) Option {
	return func(s *bridgeService) {
		s.dispatchValue = value
		s.hookMetadata = hookMetadata
	}
}

type bridgeService struct {
	cfg        *config.BridgeConfig
	codec      *message.Codec
	prices     *pricefeed.Converter
	pool       *liquidity.Pool
	risk       *risk.Controller
	ledger     *reorg.Ledger
	fund       InsuranceFund
	dispatcher Dispatcher
	blocks     BlockSource
	payer      Payer
	nonces     NonceStore
	snapshots  SnapshotStore
	poolStore  PoolStore
	pending    PendingStore
	guard      *guard.Guard
	logger     *zap.Logger

	dispatchValue *big.Int
	hookMetadata  []byte

	mu     sync.RWMutex
	remote *RemoteSnapshot
}

// NewService wires the accounting components and restores persisted pool and
// snapshot state.
func NewService(
	ctx context.Context,
	cfg *config.BridgeConfig,
	oracle pricefeed.Oracle,
	fund InsuranceFund,
	dispatcher Dispatcher,
	blocks BlockSource,
	payer Payer,
	stores Stores,
	logger *zap.Logger,
	opts ...Option,
) (Service, error) {
	version, err := message.ParseVersion(cfg.WireVersion)
	if err != nil {
		return nil, err
	}
	codec, err := message.NewCodec(version)
	if err != nil {
		return nil, err
	}

	pool, err := liquidity.NewPool(liquidity.Config{InsuranceRewardShare: cfg.InsuranceRewardShare}, fund, logger.Named("pool"))
	if err != nil {
		return nil, fmt.Errorf("failed to create liquidity pool: %w", err)
	}
	state, err := stores.Pool.LoadPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load liquidity pool: %w", err)
	}
	if state != nil {
		if err := pool.Restore(*state); err != nil {
			return nil, fmt.Errorf("failed to restore liquidity pool: %w", err)
		}
	}

	remote, err := stores.Snapshots.LoadSnapshot(ctx, cfg.RemoteChainID)
	if err != nil {
		return nil, fmt.Errorf("failed to load remote snapshot: %w", err)
	}

	controller := risk.NewController(cfg.FinalityPeriod)
	pending, err := stores.Pending.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending transfers: %w", err)
	}
	if err := controller.Restore(pending); err != nil {
		return nil, fmt.Errorf("failed to restore pending transfers: %w", err)
	}

	s := &bridgeService{
		cfg:           cfg,
		codec:         codec,
		prices:        pricefeed.NewConverter(oracle),
		pool:          pool,
		risk:          controller,
		ledger:        reorg.NewLedger(stores.Ledger, fund, pool, logger.Named("reorg")),
		fund:          fund,
		dispatcher:    dispatcher,
		blocks:        blocks,
		payer:         payer,
		nonces:        stores.Nonces,
		snapshots:     stores.Snapshots,
		poolStore:     stores.Pool,
		pending:       stores.Pending,
		guard:         guard.New(),
		logger:        logger,
		dispatchValue: new(big.Int),
		remote:        remote,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.publishMetrics()

	logger.Info("bridge service initialized",
		zap.Uint64("local_chain_id", cfg.LocalChainID),
		zap.Uint64("remote_chain_id", cfg.RemoteChainID),
		zap.Stringer("wire_version", version),
		zap.Uint64("finality_period", cfg.FinalityPeriod),
		zap.Int("pending_transfers", len(pending)),
		zap.Bool("remote_snapshot", remote != nil))
	return s, nil
}

func (s *bridgeService) InitiateTransfer(ctx context.Context, req *TransferRequest) (*TransferReceipt, error) {
	start := time.Now()

	if req == nil || req.Amount == nil || req.Amount.Sign() <= 0 {
		return nil, ErrZeroAmount
	}
	if req.Destination != s.cfg.RemoteChainID {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDestination, req.Destination)
	}
	if req.Recipient == (common.Address{}) {
		return nil, ErrInvalidRecipient
	}

	ctx, release, err := s.guard.Enter(ctx, opInitiate)
	if err != nil {
		return nil, err
	}
	defer release()

	quote, err := s.prices.Quote(ctx)
	if err != nil {
		s.countFailure(directionOutbound, "oracle")
		return nil, err
	}

	block, err := s.blocks.CurrentBlock(ctx)
	if err != nil {
		s.countFailure(directionOutbound, "block_source")
		return nil, fmt.Errorf("failed to get current block: %w", err)
	}
	s.sweep(ctx, block)

	fee := feeFor(req.Amount, s.cfg.OutboundFeeBps)
	bridged := new(big.Int).Sub(req.Amount, fee)
	usdValue := quote.ToUSD(bridged)

	insurance, err := s.fund.Balance(ctx)
	if err != nil {
		s.countFailure(directionOutbound, "insurance_fund")
		return nil, fmt.Errorf("failed to read insurance fund balance: %w", err)
	}
	insuranceUSD := quote.ToUSD(insurance)
	destinationLiquidity := s.remoteLiquidity()

	if err := s.risk.Check(usdValue, insuranceUSD, destinationLiquidity); err != nil {
		metrics.TransfersTotal.WithLabelValues(directionOutbound, "rejected").Inc()
		return nil, err
	}

	nonce, err := s.nonces.IncrementNonce(ctx, s.cfg.LocalChainID)
	if err != nil {
		s.countFailure(directionOutbound, "nonce")
		return nil, fmt.Errorf("failed to allocate transfer nonce: %w", err)
	}
	transferID := TransferID(s.cfg.LocalChainID, nonce)

	if err := s.risk.Admit(transferID, usdValue, insuranceUSD, destinationLiquidity, block); err != nil {
		metrics.TransfersTotal.WithLabelValues(directionOutbound, "rejected").Inc()
		return nil, err
	}
	admitted := risk.PendingTransfer{TransferID: transferID, AmountUSD: usdValue, OriginBlock: block}
	if err := s.pending.SavePending(ctx, admitted); err != nil {
		s.risk.Cancel(transferID)
		s.countFailure(directionOutbound, "pending_persist")
		return nil, fmt.Errorf("failed to persist pending transfer: %w", err)
	}

	localLiquidity := new(big.Int).Add(s.pool.AvailableLiquidity(), bridged)
	payload, err := s.encode(req, bridged, transferID, block, insuranceUSD, quote.ToUSD(localLiquidity))
	if err != nil {
		s.cancel(ctx, transferID)
		return nil, err
	}

	destination := strconv.FormatUint(req.Destination, 10)
	messageID, err := s.dispatcher.Dispatch(ctx, req.Destination, s.dispatchValue, payload, s.hookMetadata)
	if err != nil {
		s.cancel(ctx, transferID)
		metrics.MessagesDispatched.WithLabelValues(destination, "failed").Inc()
		s.countFailure(directionOutbound, "dispatch")
		return nil, fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}
	metrics.MessagesDispatched.WithLabelValues(destination, "success").Inc()

	s.pool.Credit(bridged)
	s.distributeFee(ctx, transferID, fee)
	s.savePool(ctx)

	metrics.TransfersTotal.WithLabelValues(directionOutbound, "success").Inc()
	metrics.TransferDuration.WithLabelValues(directionOutbound).Observe(time.Since(start).Seconds())
	metrics.TransferAmountUSD.WithLabelValues(directionOutbound).Observe(metrics.Scaled(usdValue))
	s.publishMetrics()

	return &TransferReceipt{
		MessageID:   messageID,
		TransferID:  transferID,
		Amount:      new(big.Int).Set(req.Amount),
		Fee:         fee,
		Bridged:     bridged,
		AmountUSD:   usdValue,
		OriginBlock: block,
	}, nil
}

func (s *bridgeService) ReceiveTransfer(ctx context.Context, origin uint64, payload []byte) error {
	start := time.Now()

	ctx, release, err := s.guard.Enter(ctx, opReceive)
	if err != nil {
		return err
	}
	defer release()

	msg, err := s.codec.Decode(payload)
	if err != nil {
		s.countFailure(directionInbound, "decode")
		return err
	}
	if origin != s.cfg.RemoteChainID {
		return fmt.Errorf("%w: %d", ErrUnknownOrigin, origin)
	}
	amount := msg.Amount.ToBig()
	if amount.Sign() == 0 {
		return ErrZeroAmount
	}
	recipient := msg.RecipientAddress()
	if recipient == (common.Address{}) {
		return ErrInvalidRecipient
	}

	quote, err := s.prices.Quote(ctx)
	if err != nil {
		s.countFailure(directionInbound, "oracle")
		return err
	}
	amountUSD := quote.ToUSD(amount)

	// V1 payloads carry no transfer id and cannot be reconciled.
	tracked := msg.TransferID != (common.Hash{})

	var prev *reorg.TransferRecord
	if tracked {
		prev, err = s.ledger.Conflict(ctx, origin, msg.TransferID)
		if err != nil {
			return err
		}
	}
	payable := s.pool.AvailableLiquidity()
	if prev != nil {
		payable.Add(payable, quote.ToNative(prev.AmountUSD))
	}
	if amount.Cmp(payable) > 0 {
		metrics.TransfersTotal.WithLabelValues(directionInbound, "rejected").Inc()
		return fmt.Errorf("%w: payout %s exceeds pool liquidity %s", risk.ErrInsufficientLiquidity, amount, payable)
	}

	if tracked {
		reorged, err := s.ledger.RecordInbound(ctx, quote, origin, msg.TransferID, amountUSD, msg.OriginBlock)
		if err != nil {
			var recErr *reorg.ReconciliationError
			if errors.As(err, &recErr) {
				s.halt(fmt.Sprintf("reorg clawback shortfall for transfer %s", msg.TransferID.Hex()))
			}
			s.countFailure(directionInbound, "reconciliation")
			return err
		}
		if reorged != nil {
			s.logger.Warn("reorged transfer reconciled",
				zap.Uint64("origin_chain", origin),
				zap.String("transfer_id", msg.TransferID.Hex()),
				zap.Stringer("clawback_wei", reorged.ClawbackNative))
		}
	}

	s.updateRemote(ctx, origin, msg)

	before := s.pool.State()
	if err := s.pool.Release(amount); err != nil {
		s.logger.Error("pool could not release inbound amount after pre-check",
			zap.String("transfer_id", msg.TransferID.Hex()),
			zap.Stringer("amount", amount),
			zap.Error(err))
		s.forget(ctx, tracked, origin, msg.TransferID)
		return err
	}

	fee := feeFor(amount, s.cfg.InboundFeeBps)
	payout := new(big.Int).Sub(amount, fee)
	if err := s.payer.Pay(ctx, recipient, payout); err != nil {
		if rerr := s.pool.Restore(before); rerr != nil {
			s.logger.Error("failed to restore pool after payout failure", zap.Error(rerr))
		}
		s.forget(ctx, tracked, origin, msg.TransferID)
		s.countFailure(directionInbound, "payout")
		return fmt.Errorf("%w: %v", ErrPayoutFailed, err)
	}

	s.distributeFee(ctx, msg.TransferID, fee)
	s.savePool(ctx)

	metrics.TransfersTotal.WithLabelValues(directionInbound, "success").Inc()
	metrics.TransferDuration.WithLabelValues(directionInbound).Observe(time.Since(start).Seconds())
	metrics.TransferAmountUSD.WithLabelValues(directionInbound).Observe(metrics.Scaled(amountUSD))
	s.publishMetrics()
	return nil
}

func (s *bridgeService) DepositLiquidity(ctx context.Context, provider common.Address, amount *big.Int) (*big.Int, error) {
	ctx, release, err := s.guard.Enter(ctx, opDeposit)
	if err != nil {
		return nil, err
	}
	defer release()

	shares, err := s.pool.Deposit(ctx, provider, amount)
	if err != nil {
		return nil, err
	}
	s.savePool(ctx)
	s.publishMetrics()
	return shares, nil
}

func (s *bridgeService) WithdrawLiquidity(ctx context.Context, provider common.Address, shares *big.Int) (*big.Int, error) {
	ctx, release, err := s.guard.Enter(ctx, opWithdraw)
	if err != nil {
		return nil, err
	}
	defer release()

	before := s.pool.State()
	amount, err := s.pool.Withdraw(ctx, provider, shares)
	if err != nil {
		if errors.Is(err, liquidity.ErrInsufficientPoolBalance) {
			s.halt("liquidity pool invariant violated on withdraw")
		}
		return nil, err
	}
	if err := s.payer.Pay(ctx, provider, amount); err != nil {
		if rerr := s.pool.Restore(before); rerr != nil {
			s.logger.Error("failed to restore pool after payout failure", zap.Error(rerr))
		}
		return nil, fmt.Errorf("%w: %v", ErrPayoutFailed, err)
	}
	s.savePool(ctx)
	s.publishMetrics()
	return amount, nil
}

func (s *bridgeService) ClaimFees(ctx context.Context, provider common.Address) (*big.Int, error) {
	ctx, release, err := s.guard.Enter(ctx, opClaim)
	if err != nil {
		return nil, err
	}
	defer release()

	before := s.pool.State()
	amount, err := s.pool.ClaimFees(ctx, provider)
	if err != nil {
		if errors.Is(err, liquidity.ErrInsufficientPoolBalance) {
			s.halt("liquidity pool invariant violated on fee claim")
		}
		return nil, err
	}
	if amount.Sign() == 0 {
		return amount, nil
	}
	if err := s.payer.Pay(ctx, provider, amount); err != nil {
		if rerr := s.pool.Restore(before); rerr != nil {
			s.logger.Error("failed to restore pool after payout failure", zap.Error(rerr))
		}
		return nil, fmt.Errorf("%w: %v", ErrPayoutFailed, err)
	}
	s.savePool(ctx)
	s.publishMetrics()
	return amount, nil
}

func (s *bridgeService) DepositInsurance(ctx context.Context, amount *big.Int) (*big.Int, error) {
	ctx, release, err := s.guard.Enter(ctx, opDepositInsurance)
	if err != nil {
		return nil, err
	}
	defer release()

	if amount == nil || amount.Sign() <= 0 {
		return nil, ErrZeroAmount
	}
	return s.fund.Deposit(ctx, amount)
}

func (s *bridgeService) Position(_ context.Context, provider common.Address) (*Position, error) {
	return &Position{
		Provider:    provider,
		Shares:      s.pool.SharesOf(provider),
		PendingFees: s.pool.PendingFees(provider),
	}, nil
}

// ProcessFinalized runs the finality sweep against the current local block.
func (s *bridgeService) ProcessFinalized(ctx context.Context) (int, error) {
	ctx, release, err := s.guard.Enter(ctx, opFinalize)
	if err != nil {
		return 0, err
	}
	defer release()

	block, err := s.blocks.CurrentBlock(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current block: %w", err)
	}
	removed := s.sweep(ctx, block)
	s.publishMetrics()
	return removed, nil
}

func (s *bridgeService) ReorgedTransfers(ctx context.Context, origin uint64) ([]*reorg.ReorgedTransfer, error) {
	return s.ledger.ReorgedTransfers(ctx, origin)
}

func (s *bridgeService) Status(ctx context.Context) (*Status, error) {
	halted, reason := s.risk.Halted()
	st := &Status{
		LocalChainID:           s.cfg.LocalChainID,
		RemoteChainID:          s.cfg.RemoteChainID,
		Halted:                 halted,
		HaltReason:             reason,
		PendingTransfers:       len(s.risk.Pending()),
		PendingBridgeAmountUSD: s.risk.PendingBridgeAmount(),
		Pool: PoolStatus{
			Assets:             s.pool.Assets(),
			AvailableLiquidity: s.pool.AvailableLiquidity(),
			TotalShares:        s.pool.TotalShares(),
			TotalFees:          s.pool.TotalFees(),
			FeeIndex:           s.pool.FeeIndex(),
		},
		Remote: s.remoteSnapshot(),
	}

	balance, err := s.fund.Balance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read insurance fund balance: %w", err)
	}
	st.InsuranceFundBalance = balance

	quote, err := s.prices.Quote(ctx)
	if err != nil {
		st.PriceError = err.Error()
		return st, nil
	}
	st.Price = quote.Price.String()
	st.InsuranceFundUSD = quote.ToUSD(balance)
	st.SafeBridgeableAmountUSD = s.risk.SafeBridgeableAmount(st.InsuranceFundUSD)
	return st, nil
}

func (s *bridgeService) Resume(ctx context.Context) error {
	_, release, err := s.guard.Enter(ctx, opResume)
	if err != nil {
		return err
	}
	defer release()

	s.risk.Resume()
	metrics.AdmissionsHalted.Set(0)
	s.logger.Info("admissions resumed by operator")
	return nil
}

func (s *bridgeService) encode(
	req *TransferRequest,
	bridged *big.Int,
	transferID common.Hash,
	block uint64,
	insuranceUSD, liquidityUSD *big.Int,
) ([]byte, error) {
	amount, err := message.FromBig(bridged)
	if err != nil {
		return nil, err
	}
	insurance, err := message.FromBig(insuranceUSD)
	if err != nil {
		return nil, err
	}
	liquidityWord, err := message.FromBig(liquidityUSD)
	if err != nil {
		return nil, err
	}

	msg := &message.Message{
		Recipient:             message.AddressToRecipient(req.Recipient),
		Amount:                amount,
		Metadata:              req.Metadata,
		InsuranceFundUSD:      insurance,
		AvailableLiquidityUSD: liquidityWord,
	}
	if s.codec.Version() >= message.V2 {
		msg.TransferID = transferID
	}
	if s.codec.Version() >= message.V3 {
		msg.OriginBlock = block
	}
	return s.codec.Encode(msg)
}

func (s *bridgeService) sweep(ctx context.Context, block uint64) int {
	finalized := s.risk.Finalize(block)
	metrics.LastProcessedBlock.WithLabelValues(strconv.FormatUint(s.cfg.LocalChainID, 10)).Set(float64(block))
	if len(finalized) == 0 {
		return 0
	}

	amount := new(big.Int)
	ids := make([]common.Hash, 0, len(finalized))
	for _, p := range finalized {
		amount.Add(amount, p.AmountUSD)
		ids = append(ids, p.TransferID)
	}
	// A row left behind is restored on the next start and finalized again.
	if err := s.pending.DeletePending(ctx, ids...); err != nil {
		s.logger.Error("failed to delete finalized transfers", zap.Int("count", len(ids)), zap.Error(err))
		metrics.ErrorsTotal.WithLabelValues("bridge", "pending_persist").Inc()
	}
	metrics.FinalizedTransfers.Add(float64(len(finalized)))
	s.logger.Debug("pending transfers finalized",
		zap.Uint64("block", block),
		zap.Int("count", len(finalized)),
		zap.Stringer("amount_usd", amount))
	return len(finalized)
}

// cancel drops the admission of a transfer that was never sent.
func (s *bridgeService) cancel(ctx context.Context, id common.Hash) {
	s.risk.Cancel(id)
	if err := s.pending.DeletePending(ctx, id); err != nil {
		s.logger.Error("failed to delete cancelled transfer", zap.String("transfer_id", id.Hex()), zap.Error(err))
		metrics.ErrorsTotal.WithLabelValues("bridge", "pending_persist").Inc()
	}
}

// updateRemote caches the counterpart's risk view unless it is older than the one held.
func (s *bridgeService) updateRemote(ctx context.Context, origin uint64, msg *message.Message) {
	snap := &RemoteSnapshot{
		ChainID:               origin,
		InsuranceFundUSD:      msg.InsuranceFundUSD.ToBig(),
		AvailableLiquidityUSD: msg.AvailableLiquidityUSD.ToBig(),
		OriginBlock:           msg.OriginBlock,
		UpdatedAt:             time.Now().UTC(),
	}

	s.mu.Lock()
	if s.remote != nil && s.remote.OriginBlock > snap.OriginBlock {
		s.mu.Unlock()
		s.logger.Debug("ignoring stale remote snapshot",
			zap.Uint64("held_block", s.remote.OriginBlock),
			zap.Uint64("message_block", snap.OriginBlock))
		return
	}
	s.remote = snap
	s.mu.Unlock()

	if err := s.snapshots.SaveSnapshot(ctx, snap); err != nil {
		s.logger.Warn("failed to persist remote snapshot", zap.Uint64("chain_id", origin), zap.Error(err))
	}
}

func (s *bridgeService) remoteLiquidity() *big.Int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.remote == nil || s.remote.AvailableLiquidityUSD == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(s.remote.AvailableLiquidityUSD)
}

func (s *bridgeService) remoteSnapshot() *RemoteSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.remote == nil {
		return nil
	}
	cp := *s.remote
	return &cp
}

func (s *bridgeService) halt(reason string) {
	s.risk.Halt(reason)
	metrics.AdmissionsHalted.Set(1)
	s.logger.Error("admissions halted", zap.String("reason", reason))
}

func (s *bridgeService) forget(ctx context.Context, tracked bool, origin uint64, id common.Hash) {
	if !tracked {
		return
	}
	if err := s.ledger.Forget(ctx, origin, id); err != nil {
		s.logger.Error("failed to reset transfer record", zap.String("transfer_id", id.Hex()), zap.Error(err))
	}
}

// distributeFee splits a collected fee. The pool keeps the whole fee when the
// insurance fund rejects its cut, so only the fund's share is affected.
func (s *bridgeService) distributeFee(ctx context.Context, id common.Hash, fee *big.Int) {
	if err := s.pool.DistributeFee(ctx, fee); err != nil {
		s.logger.Error("insurance fee cut not delivered",
			zap.String("transfer_id", id.Hex()),
			zap.Stringer("fee", fee),
			zap.Error(err))
		metrics.ErrorsTotal.WithLabelValues("bridge", "fee_distribution").Inc()
	}
}

func (s *bridgeService) savePool(ctx context.Context) {
	if err := s.poolStore.SavePool(ctx, s.pool.State()); err != nil {
		s.logger.Error("failed to persist liquidity pool", zap.Error(err))
		metrics.ErrorsTotal.WithLabelValues("bridge", "pool_persist").Inc()
	}
}

func (s *bridgeService) publishMetrics() {
	metrics.PendingBridgeAmountUSD.Set(metrics.Scaled(s.risk.PendingBridgeAmount()))
	metrics.PendingTransfers.Set(float64(len(s.risk.Pending())))
	metrics.PoolBalance.WithLabelValues("assets").Set(metrics.Scaled(s.pool.Assets()))
	metrics.PoolBalance.WithLabelValues("available").Set(metrics.Scaled(s.pool.AvailableLiquidity()))
	metrics.PoolBalance.WithLabelValues("fees").Set(metrics.Scaled(s.pool.TotalFees()))
	metrics.PoolBalance.WithLabelValues("shares").Set(metrics.Scaled(s.pool.TotalShares()))
}

func (s *bridgeService) countFailure(direction, reason string) {
	metrics.TransfersTotal.WithLabelValues(direction, "failed").Inc()
	metrics.ErrorsTotal.WithLabelValues("bridge", reason).Inc()
}

// feeFor returns amount * bps / 10000, rounded down.
func feeFor(amount *big.Int, bps uint64) *big.Int {
	fee := new(big.Int).Mul(amount, new(big.Int).SetUint64(bps))
	return fee.Quo(fee, big.NewInt(bpsDenominator))
}
