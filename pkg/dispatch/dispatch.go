// Package dispatch delivers bridge payloads to the counterpart bridge over HTTP.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chainsafe/insured-bridge/pkg/auth"
	"github.com/chainsafe/insured-bridge/pkg/config"
)

// MessagesPath is where a bridge accepts envelopes from its counterpart.
const MessagesPath = "/api/v1/messages"

const maxResponseSize = 1 << 16

var ErrInvalidEnvelope = errors.New("invalid message envelope")

// Envelope is the JSON body carrying one payload between bridges.
type Envelope struct {
	ID           string `json:"id"`
	Origin       uint64 `json:"origin"`
	Destination  uint64 `json:"destination"`
	Value        string `json:"value"`
	Payload      string `json:"payload"`
	HookMetadata string `json:"hook_metadata,omitempty"`
}

// Decode validates the envelope fields and returns the raw payload.
func (e *Envelope) Decode() ([]byte, error) {
	if e.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidEnvelope)
	}
	payload, err := hexutil.Decode(e.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrInvalidEnvelope, err)
	}
	if e.HookMetadata != "" {
		if _, err := hexutil.Decode(e.HookMetadata); err != nil {
			return nil, fmt.Errorf("%w: hook metadata: %v", ErrInvalidEnvelope, err)
		}
	}
	return payload, nil
}

// HTTPDispatcher posts signed envelopes to the counterpart's messages endpoint.
type HTTPDispatcher struct {
	endpoint string
	origin   uint64
	signer   *auth.MessageSigner
	client   *http.Client
	logger   *zap.Logger
}

// NewHTTPDispatcher creates a dispatcher sending on behalf of origin
func NewHTTPDispatcher(cfg *config.DispatcherConfig, origin uint64, logger *zap.Logger) *HTTPDispatcher {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &HTTPDispatcher{
		endpoint: strings.TrimRight(cfg.RemoteURL, "/") + MessagesPath,
		origin:   origin,
		signer:   auth.NewMessageSigner(cfg.SharedSecret, cfg.Issuer, cfg.TokenTTL),
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Dispatch sends payload and returns the message id once the counterpart accepted it.
func (d *HTTPDispatcher) Dispatch(
	ctx context.Context,
	destination uint64,
	value *big.Int,
	payload, hookMetadata []byte,
) (string, error) {
	id := uuid.NewString()

	token, err := d.signer.Sign(id, d.origin, destination, payload)
	if err != nil {
		return "", err
	}

	env := Envelope{
		ID:          id,
		Origin:      d.origin,
		Destination: destination,
		Value:       "0",
		Payload:     hexutil.Encode(payload),
	}
	if value != nil {
		env.Value = value.String()
	}
	if len(hookMetadata) > 0 {
		env.HookMetadata = hexutil.Encode(hookMetadata)
	}

	body, err := json.Marshal(&env)
	if err != nil {
		return "", fmt.Errorf("failed to marshal envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to post message: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		return "", fmt.Errorf("counterpart rejected message %s: status %d: %s", id, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	d.logger.Debug("message dispatched",
		zap.String("message_id", id),
		zap.Uint64("destination", destination),
		zap.Int("payload_size", len(payload)))
	return id, nil
}
