package bridge

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/chainsafe/insured-bridge/pkg/reorg"
)

const serviceName = "BridgeService"

const metadataDisplaySize = 16

// logService wraps Service with logging of the mutating calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the bridge Service.
// It logs method entry/exit, duration and errors.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

func (ls *logService) InitiateTransfer(ctx context.Context, req *TransferRequest) (receipt *TransferReceipt, err error) {
	start := time.Now()
	fields := []zap.Field{zap.String("service", serviceName), zap.String("method", "InitiateTransfer")}
	if req != nil {
		fields = append(fields,
			zap.String("sender", req.Sender.Hex()),
			zap.String("recipient", req.Recipient.Hex()),
			zap.Uint64("destination", req.Destination),
			zap.Stringer("amount", req.Amount),
			zap.String("metadata", describeBytes(req.Metadata)),
		)
	}
	ls.logger.Info("InitiateTransfer started", fields...)

	defer func() {
		fields = append(fields, zap.Duration("duration", time.Since(start)))
		if err != nil {
			ls.logger.Error("InitiateTransfer failed", append(fields, zap.Error(err))...)
			return
		}
		ls.logger.Info("InitiateTransfer completed", append(fields,
			zap.String("message_id", receipt.MessageID),
			zap.String("transfer_id", receipt.TransferID.Hex()),
			zap.Stringer("fee", receipt.Fee),
			zap.Stringer("amount_usd", receipt.AmountUSD),
			zap.Uint64("origin_block", receipt.OriginBlock),
		)...)
	}()

	return ls.svc.InitiateTransfer(ctx, req)
}

func (ls *logService) ReceiveTransfer(ctx context.Context, origin uint64, payload []byte) (err error) {
	start := time.Now()
	fields := []zap.Field{
		zap.String("service", serviceName),
		zap.String("method", "ReceiveTransfer"),
		zap.Uint64("origin", origin),
		zap.Int("payload_size", len(payload)),
	}
	ls.logger.Info("ReceiveTransfer started", fields...)

	defer func() {
		fields = append(fields, zap.Duration("duration", time.Since(start)))
		if err != nil {
			ls.logger.Error("ReceiveTransfer failed", append(fields, zap.Error(err))...)
			return
		}
		ls.logger.Info("ReceiveTransfer completed", fields...)
	}()

	return ls.svc.ReceiveTransfer(ctx, origin, payload)
}

func (ls *logService) DepositLiquidity(ctx context.Context, provider common.Address, amount *big.Int) (shares *big.Int, err error) {
	start := time.Now()
	defer func() {
		ls.logResult("DepositLiquidity", start, err,
			zap.String("provider", provider.Hex()),
			zap.Stringer("amount", amount),
			zap.Stringer("shares", shares))
	}()
	return ls.svc.DepositLiquidity(ctx, provider, amount)
}

func (ls *logService) WithdrawLiquidity(ctx context.Context, provider common.Address, shares *big.Int) (amount *big.Int, err error) {
	start := time.Now()
	defer func() {
		ls.logResult("WithdrawLiquidity", start, err,
			zap.String("provider", provider.Hex()),
			zap.Stringer("shares", shares),
			zap.Stringer("amount", amount))
	}()
	return ls.svc.WithdrawLiquidity(ctx, provider, shares)
}

func (ls *logService) ClaimFees(ctx context.Context, provider common.Address) (amount *big.Int, err error) {
	start := time.Now()
	defer func() {
		ls.logResult("ClaimFees", start, err,
			zap.String("provider", provider.Hex()),
			zap.Stringer("amount", amount))
	}()
	return ls.svc.ClaimFees(ctx, provider)
}

func (ls *logService) DepositInsurance(ctx context.Context, amount *big.Int) (balance *big.Int, err error) {
	start := time.Now()
	defer func() {
		ls.logResult("DepositInsurance", start, err,
			zap.Stringer("amount", amount),
			zap.Stringer("balance", balance))
	}()
	return ls.svc.DepositInsurance(ctx, amount)
}

func (ls *logService) Resume(ctx context.Context) (err error) {
	start := time.Now()
	defer func() {
		ls.logResult("Resume", start, err)
	}()
	return ls.svc.Resume(ctx)
}

// Read-only and periodic calls are not logged.

func (ls *logService) Position(ctx context.Context, provider common.Address) (*Position, error) {
	return ls.svc.Position(ctx, provider)
}

func (ls *logService) ProcessFinalized(ctx context.Context) (int, error) {
	return ls.svc.ProcessFinalized(ctx)
}

func (ls *logService) ReorgedTransfers(ctx context.Context, origin uint64) ([]*reorg.ReorgedTransfer, error) {
	return ls.svc.ReorgedTransfers(ctx, origin)
}

func (ls *logService) Status(ctx context.Context) (*Status, error) {
	return ls.svc.Status(ctx)
}

func (ls *logService) logResult(method string, start time.Time, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.String("service", serviceName),
		zap.String("method", method),
		zap.Duration("duration", time.Since(start)),
	)
	if err != nil {
		ls.logger.Error(method+" failed", append(fields, zap.Error(err))...)
		return
	}
	ls.logger.Info(method+" completed", fields...)
}

// describeBytes shows a short hex prefix and the length of opaque data
func describeBytes(b []byte) string {
	if len(b) == 0 {
		return "<empty>"
	}
	if len(b) > metadataDisplaySize {
		return common.Bytes2Hex(b[:metadataDisplaySize]) + "..."
	}
	return common.Bytes2Hex(b)
}
