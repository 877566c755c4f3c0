package dispatch

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chainsafe/insured-bridge/pkg/auth"
	"github.com/chainsafe/insured-bridge/pkg/config"
)

const secret = "0123456789abcdef0123456789abcdef"

func testConfig(url string) *config.DispatcherConfig {
	return &config.DispatcherConfig{
		RemoteURL:    url,
		SharedSecret: secret,
		Issuer:       "insured-bridge",
		TokenTTL:     time.Minute,
		Timeout:      time.Second,
	}
}

func TestHTTPDispatcher_DeliversSignedEnvelope(t *testing.T) {
	validator := auth.NewMessageValidator(secret, "insured-bridge", 10)

	type delivery struct {
		env    Envelope
		origin uint64
		err    error
	}
	delivered := make(chan delivery, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var d delivery
		if err := json.NewDecoder(r.Body).Decode(&d.env); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		payload, err := d.env.Decode()
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.URL.Path != MessagesPath {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		d.origin, _, d.err = validator.Validate(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "), payload)
		delivered <- d
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	d := NewHTTPDispatcher(testConfig(srv.URL+"/"), 1, zap.NewNop())
	id, err := d.Dispatch(context.Background(), 10, big.NewInt(7), []byte{0xde, 0xad}, []byte{0x01})
	require.NoError(t, err)

	got := <-delivered
	require.NoError(t, got.err)
	assert.Equal(t, uint64(1), got.origin)
	assert.Equal(t, id, got.env.ID)
	assert.Equal(t, uint64(10), got.env.Destination)
	assert.Equal(t, "7", got.env.Value)
	assert.Equal(t, "0xdead", got.env.Payload)
	assert.Equal(t, "0x01", got.env.HookMetadata)
}

func TestHTTPDispatcher_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "halted", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	d := NewHTTPDispatcher(testConfig(srv.URL), 1, zap.NewNop())
	_, err := d.Dispatch(context.Background(), 10, nil, []byte{0x01}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestEnvelope_Decode(t *testing.T) {
	_, err := (&Envelope{Payload: "0x01"}).Decode()
	assert.ErrorIs(t, err, ErrInvalidEnvelope)

	_, err = (&Envelope{ID: "a", Payload: "zz"}).Decode()
	assert.ErrorIs(t, err, ErrInvalidEnvelope)

	payload, err := (&Envelope{ID: "a", Payload: "0x0102"}).Decode()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, payload)
}
