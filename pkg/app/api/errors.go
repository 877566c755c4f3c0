package api

import (
	"errors"

	apperrors "github.com/chainsafe/insured-bridge/pkg/app/errors"
	"github.com/chainsafe/insured-bridge/pkg/auth"
	"github.com/chainsafe/insured-bridge/pkg/bridge"
	"github.com/chainsafe/insured-bridge/pkg/dispatch"
	"github.com/chainsafe/insured-bridge/pkg/guard"
	"github.com/chainsafe/insured-bridge/pkg/insurance"
	"github.com/chainsafe/insured-bridge/pkg/liquidity"
	"github.com/chainsafe/insured-bridge/pkg/message"
	"github.com/chainsafe/insured-bridge/pkg/pricefeed"
	"github.com/chainsafe/insured-bridge/pkg/reorg"
	"github.com/chainsafe/insured-bridge/pkg/risk"
)

var badRequestErrors = []error{
	bridge.ErrZeroAmount,
	bridge.ErrInvalidRecipient,
	bridge.ErrUnknownDestination,
	bridge.ErrUnknownOrigin,
	message.ErrMalformedMessage,
	message.ErrUnsupportedVersion,
	message.ErrFieldNotSupported,
	message.ErrValueOverflow,
	liquidity.ErrZeroDeposit,
	liquidity.ErrDepositTooSmall,
	liquidity.ErrInvalidShareAmount,
	liquidity.ErrInvalidFee,
	insurance.ErrInvalidAmount,
	risk.ErrInvalidAmount,
	dispatch.ErrInvalidEnvelope,
}

var riskErrors = []error{
	risk.ErrInsufficientLiquidity,
	risk.ErrExceedsSafeBridgeableAmount,
	risk.ErrDuplicateTransfer,
}

var authErrors = []error{
	auth.ErrInvalidToken,
	auth.ErrPayloadMismatch,
	auth.ErrUnexpectedAudience,
	auth.ErrStaleAction,
}

// toServiceError maps bridge errors onto the HTTP error categories
func toServiceError(err error) error {
	if err == nil {
		return nil
	}
	var svcErr *apperrors.ServiceError
	if errors.As(err, &svcErr) {
		return err
	}

	switch {
	case errors.Is(err, reorg.ErrInsufficientInsuranceFunds):
		return apperrors.RecoveringError(err, "reorg clawback could not be covered, admissions halted")
	case errors.Is(err, liquidity.ErrInsufficientPoolBalance):
		return apperrors.GeneralError(err)
	case errors.Is(err, risk.ErrAdmissionsHalted):
		return apperrors.LockedError(err, err.Error())
	case errors.Is(err, guard.ErrReentrantCall):
		return apperrors.ConflictError(err, "operation already in progress")
	case errors.Is(err, pricefeed.ErrInvalidPrice):
		return apperrors.DependencyError(err, "price oracle unavailable")
	case errors.Is(err, bridge.ErrDispatchFailed), errors.Is(err, bridge.ErrPayoutFailed):
		return apperrors.DependencyError(err, err.Error())
	}
	if isAny(err, riskErrors) {
		return apperrors.ConflictError(err, err.Error())
	}
	if isAny(err, authErrors) {
		return apperrors.UnAuthorizedError(err, err.Error())
	}
	if isAny(err, badRequestErrors) {
		return apperrors.BadRequestError(err, err.Error())
	}
	return apperrors.GeneralError(err)
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
