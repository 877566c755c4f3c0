// Package api serves the bridge over HTTP and implements app.Runner for the bridge process.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/insured-bridge/pkg/app/errors"
	apphttp "github.com/chainsafe/insured-bridge/pkg/app/http"
	"github.com/chainsafe/insured-bridge/pkg/auth"
	"github.com/chainsafe/insured-bridge/pkg/bridge"
	"github.com/chainsafe/insured-bridge/pkg/dispatch"
)

// Actions a liquidity provider signs with EIP-191.
const (
	ActionDepositLiquidity  = "deposit_liquidity"
	ActionWithdrawLiquidity = "withdraw_liquidity"
	ActionClaimFees         = "claim_fees"
)

const (
	maxBodySize         = 1 << 20
	defaultActionMaxAge = 5 * time.Minute
)

// MessageValidator authenticates envelopes from the counterpart bridge
type MessageValidator interface {
	Validate(token string, payload []byte) (uint64, *auth.MessageClaims, error)
}

// Handler serves the bridge API
type Handler struct {
	service    bridge.Service
	messages   MessageValidator
	dumpConfig func() ([]byte, error)
	maxAge     time.Duration
	now        func() time.Time
	logger     *zap.Logger
}

// NewHandler creates the API handler. dumpConfig may be nil to disable /api/v1/config.
func NewHandler(service bridge.Service, messages MessageValidator, dumpConfig func() ([]byte, error), logger *zap.Logger) *Handler {
	return &Handler{
		service:    service,
		messages:   messages,
		dumpConfig: dumpConfig,
		maxAge:     defaultActionMaxAge,
		now:        time.Now,
		logger:     logger,
	}
}

// RegisterRoutes registers the bridge endpoints on the given chi router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/ready", apphttp.HandleError(h.ready))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", apphttp.HandleError(h.status))
		r.Post("/transfers", apphttp.HandleError(h.initiateTransfer))
		r.Post("/messages", apphttp.HandleError(h.receiveMessage))

		r.Get("/liquidity/{address}", apphttp.HandleError(h.position))
		r.With(h.signedBy(ActionDepositLiquidity)).Post("/liquidity/deposit", apphttp.HandleError(h.depositLiquidity))
		r.With(h.signedBy(ActionWithdrawLiquidity)).Post("/liquidity/withdraw", apphttp.HandleError(h.withdrawLiquidity))
		r.With(h.signedBy(ActionClaimFees)).Post("/fees/claim", apphttp.HandleError(h.claimFees))

		r.Post("/insurance/deposit", apphttp.HandleError(h.depositInsurance))
		r.Get("/reorgs/{chainID}", apphttp.HandleError(h.reorgedTransfers))
		r.Post("/admin/resume", apphttp.HandleError(h.resume))
		if h.dumpConfig != nil {
			r.Get("/config", apphttp.HandleError(h.config))
		}
	})
}

type transferRequest struct {
	Sender      string `json:"sender"`
	Destination uint64 `json:"destination"`
	Recipient   string `json:"recipient"`
	Amount      string `json:"amount"`
	Metadata    string `json:"metadata,omitempty"`
}

type transferResponse struct {
	MessageID   string `json:"message_id"`
	TransferID  string `json:"transfer_id"`
	Amount      string `json:"amount"`
	Fee         string `json:"fee"`
	Bridged     string `json:"bridged"`
	AmountUSD   string `json:"amount_usd"`
	OriginBlock uint64 `json:"origin_block"`
}

type amountRequest struct {
	Amount string `json:"amount"`
}

type sharesRequest struct {
	Shares string `json:"shares"`
}

type providerResponse struct {
	Provider string `json:"provider"`
	Shares   string `json:"shares,omitempty"`
	Amount   string `json:"amount,omitempty"`
}

type positionResponse struct {
	Provider    string `json:"provider"`
	Shares      string `json:"shares"`
	PendingFees string `json:"pending_fees"`
}

type reorgedTransferResponse struct {
	OriginChain    uint64    `json:"origin_chain"`
	TransferID     string    `json:"transfer_id"`
	AmountUSD      string    `json:"amount_usd"`
	OriginBlock    uint64    `json:"origin_block"`
	ClawbackNative string    `json:"clawback_native"`
	DetectedAt     time.Time `json:"detected_at"`
}

type remoteResponse struct {
	ChainID               uint64    `json:"chain_id"`
	InsuranceFundUSD      string    `json:"insurance_fund_usd"`
	AvailableLiquidityUSD string    `json:"available_liquidity_usd"`
	OriginBlock           uint64    `json:"origin_block"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type poolResponse struct {
	Assets             string `json:"assets"`
	AvailableLiquidity string `json:"available_liquidity"`
	TotalShares        string `json:"total_shares"`
	TotalFees          string `json:"total_fees"`
	FeeIndex           string `json:"fee_index"`
}

type statusResponse struct {
	LocalChainID            uint64          `json:"local_chain_id"`
	RemoteChainID           uint64          `json:"remote_chain_id"`
	Halted                  bool            `json:"halted"`
	HaltReason              string          `json:"halt_reason,omitempty"`
	Price                   string          `json:"price,omitempty"`
	PriceError              string          `json:"price_error,omitempty"`
	PendingTransfers        int             `json:"pending_transfers"`
	PendingBridgeAmountUSD  string          `json:"pending_bridge_amount_usd"`
	SafeBridgeableAmountUSD string          `json:"safe_bridgeable_amount_usd,omitempty"`
	InsuranceFundBalance    string          `json:"insurance_fund_balance"`
	InsuranceFundUSD        string          `json:"insurance_fund_usd,omitempty"`
	Pool                    poolResponse    `json:"pool"`
	Remote                  *remoteResponse `json:"remote,omitempty"`
}

func (h *Handler) ready(w http.ResponseWriter, r *http.Request) error {
	st, err := h.service.Status(r.Context())
	if err != nil {
		return apperrors.RecoveringError(err, "bridge not ready")
	}
	if st.PriceError != "" {
		return apperrors.RecoveringError(nil, "price oracle not ready")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("READY"))
	return nil
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) error {
	st, err := h.service.Status(r.Context())
	if err != nil {
		return toServiceError(err)
	}

	resp := statusResponse{
		LocalChainID:            st.LocalChainID,
		RemoteChainID:           st.RemoteChainID,
		Halted:                  st.Halted,
		HaltReason:              st.HaltReason,
		Price:                   st.Price,
		PriceError:              st.PriceError,
		PendingTransfers:        st.PendingTransfers,
		PendingBridgeAmountUSD:  str(st.PendingBridgeAmountUSD),
		SafeBridgeableAmountUSD: optional(st.SafeBridgeableAmountUSD),
		InsuranceFundBalance:    str(st.InsuranceFundBalance),
		InsuranceFundUSD:        optional(st.InsuranceFundUSD),
		Pool: poolResponse{
			Assets:             str(st.Pool.Assets),
			AvailableLiquidity: str(st.Pool.AvailableLiquidity),
			TotalShares:        str(st.Pool.TotalShares),
			TotalFees:          str(st.Pool.TotalFees),
			FeeIndex:           str(st.Pool.FeeIndex),
		},
	}
	if st.Remote != nil {
		resp.Remote = &remoteResponse{
			ChainID:               st.Remote.ChainID,
			InsuranceFundUSD:      str(st.Remote.InsuranceFundUSD),
			AvailableLiquidityUSD: str(st.Remote.AvailableLiquidityUSD),
			OriginBlock:           st.Remote.OriginBlock,
			UpdatedAt:             st.Remote.UpdatedAt,
		}
	}
	apphttp.WriteJSON(w, http.StatusOK, &resp)
	return nil
}

func (h *Handler) initiateTransfer(w http.ResponseWriter, r *http.Request) error {
	var req transferRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	if !auth.ValidateEVMAddress(req.Sender) {
		return apperrors.BadRequestError(nil, "invalid sender address")
	}
	if !auth.ValidateEVMAddress(req.Recipient) {
		return apperrors.BadRequestError(nil, "invalid recipient address")
	}
	amount, err := parseAmount(req.Amount, "amount")
	if err != nil {
		return err
	}
	var metadata []byte
	if req.Metadata != "" {
		if metadata, err = hexutil.Decode(req.Metadata); err != nil {
			return apperrors.BadRequestError(err, "metadata must be 0x-prefixed hex")
		}
	}

	receipt, err := h.service.InitiateTransfer(r.Context(), &bridge.TransferRequest{
		Sender:      common.HexToAddress(req.Sender),
		Destination: req.Destination,
		Recipient:   common.HexToAddress(req.Recipient),
		Amount:      amount,
		Metadata:    metadata,
	})
	if err != nil {
		return toServiceError(err)
	}

	apphttp.WriteJSON(w, http.StatusOK, &transferResponse{
		MessageID:   receipt.MessageID,
		TransferID:  receipt.TransferID.Hex(),
		Amount:      str(receipt.Amount),
		Fee:         str(receipt.Fee),
		Bridged:     str(receipt.Bridged),
		AmountUSD:   str(receipt.AmountUSD),
		OriginBlock: receipt.OriginBlock,
	})
	return nil
}

// receiveMessage is the delivery endpoint used by the counterpart's dispatcher
func (h *Handler) receiveMessage(w http.ResponseWriter, r *http.Request) error {
	token, ok := bearerToken(r)
	if !ok {
		return apperrors.UnAuthorizedError(nil, "message token required")
	}

	var env dispatch.Envelope
	if err := decodeJSON(r, &env); err != nil {
		return err
	}
	payload, err := env.Decode()
	if err != nil {
		return apperrors.BadRequestError(err, err.Error())
	}

	origin, _, err := h.messages.Validate(token, payload)
	if err != nil {
		h.logger.Warn("rejected message from counterpart",
			zap.String("message_id", env.ID),
			zap.Uint64("claimed_origin", env.Origin),
			zap.Error(err))
		return apperrors.UnAuthorizedError(err, "invalid message token")
	}
	if env.Origin != origin {
		return apperrors.UnAuthorizedError(nil, "envelope origin does not match token")
	}

	if err := h.service.ReceiveTransfer(r.Context(), origin, payload); err != nil {
		return toServiceError(err)
	}
	apphttp.WriteJSON(w, http.StatusOK, map[string]string{"id": env.ID})
	return nil
}

func (h *Handler) position(w http.ResponseWriter, r *http.Request) error {
	address := chi.URLParam(r, "address")
	if !auth.ValidateEVMAddress(address) {
		return apperrors.BadRequestError(nil, "invalid provider address")
	}
	pos, err := h.service.Position(r.Context(), common.HexToAddress(address))
	if err != nil {
		return toServiceError(err)
	}
	apphttp.WriteJSON(w, http.StatusOK, &positionResponse{
		Provider:    pos.Provider.Hex(),
		Shares:      str(pos.Shares),
		PendingFees: str(pos.PendingFees),
	})
	return nil
}

func (h *Handler) depositLiquidity(w http.ResponseWriter, r *http.Request) error {
	provider, _ := auth.ProviderFromContext(r.Context())

	var req amountRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	amount, err := parseAmount(req.Amount, "amount")
	if err != nil {
		return err
	}

	shares, err := h.service.DepositLiquidity(r.Context(), provider, amount)
	if err != nil {
		return toServiceError(err)
	}
	apphttp.WriteJSON(w, http.StatusOK, &providerResponse{Provider: provider.Hex(), Shares: shares.String()})
	return nil
}

func (h *Handler) withdrawLiquidity(w http.ResponseWriter, r *http.Request) error {
	provider, _ := auth.ProviderFromContext(r.Context())

	var req sharesRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	shares, err := parseAmount(req.Shares, "shares")
	if err != nil {
		return err
	}

	amount, err := h.service.WithdrawLiquidity(r.Context(), provider, shares)
	if err != nil {
		return toServiceError(err)
	}
	apphttp.WriteJSON(w, http.StatusOK, &providerResponse{Provider: provider.Hex(), Amount: amount.String()})
	return nil
}

func (h *Handler) claimFees(w http.ResponseWriter, r *http.Request) error {
	provider, _ := auth.ProviderFromContext(r.Context())

	amount, err := h.service.ClaimFees(r.Context(), provider)
	if err != nil {
		return toServiceError(err)
	}
	apphttp.WriteJSON(w, http.StatusOK, &providerResponse{Provider: provider.Hex(), Amount: amount.String()})
	return nil
}

func (h *Handler) depositInsurance(w http.ResponseWriter, r *http.Request) error {
	var req amountRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	amount, err := parseAmount(req.Amount, "amount")
	if err != nil {
		return err
	}

	balance, err := h.service.DepositInsurance(r.Context(), amount)
	if err != nil {
		return toServiceError(err)
	}
	apphttp.WriteJSON(w, http.StatusOK, map[string]string{"balance": balance.String()})
	return nil
}

func (h *Handler) reorgedTransfers(w http.ResponseWriter, r *http.Request) error {
	chainID, err := strconv.ParseUint(chi.URLParam(r, "chainID"), 10, 64)
	if err != nil {
		return apperrors.BadRequestError(err, "invalid chain id")
	}

	list, err := h.service.ReorgedTransfers(r.Context(), chainID)
	if err != nil {
		return toServiceError(err)
	}
	resp := make([]reorgedTransferResponse, 0, len(list))
	for _, rt := range list {
		resp = append(resp, reorgedTransferResponse{
			OriginChain:    rt.OriginChain,
			TransferID:     rt.TransferID.Hex(),
			AmountUSD:      str(rt.AmountUSD),
			OriginBlock:    rt.OriginBlock,
			ClawbackNative: str(rt.ClawbackNative),
			DetectedAt:     rt.DetectedAt,
		})
	}
	apphttp.WriteJSON(w, http.StatusOK, resp)
	return nil
}

func (h *Handler) resume(w http.ResponseWriter, r *http.Request) error {
	if err := h.service.Resume(r.Context()); err != nil {
		return toServiceError(err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *Handler) config(w http.ResponseWriter, _ *http.Request) error {
	out, err := h.dumpConfig()
	if err != nil {
		return apperrors.GeneralError(err)
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
	return nil
}

// signedBy authenticates the provider from the X-Message and X-Signature headers, where
// X-Message is auth.ActionMessage(action, t) signed with EIP-191.
func (h *Handler) signedBy(action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			msg := r.Header.Get("X-Message")
			sig := r.Header.Get("X-Signature")
			if msg == "" || sig == "" {
				apphttp.DefaultErrorHandler(w, apperrors.UnAuthorizedError(nil, "signature and message required"))
				return
			}
			provider, err := auth.VerifyAction(action, msg, sig, h.now(), h.maxAge)
			if err != nil {
				apphttp.DefaultErrorHandler(w, apperrors.UnAuthorizedError(err, "invalid signature"))
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithProvider(r.Context(), provider)))
		})
	}
}

func decodeJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return apperrors.BadRequestError(err, "failed to read request")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return apperrors.BadRequestError(err, "invalid JSON")
	}
	return nil
}

func parseAmount(s, field string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, apperrors.BadRequestError(nil, fmt.Sprintf("%s must be a non-negative integer", field))
	}
	return v, nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

func str(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func optional(v *big.Int) string {
	if v == nil {
		return ""
	}
	return v.String()
}
