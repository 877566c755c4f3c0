package bridge_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chainsafe/insured-bridge/pkg/bridge"
	"github.com/chainsafe/insured-bridge/pkg/bridge/mocks"
	"github.com/chainsafe/insured-bridge/pkg/config"
)

type pollerFunc func(ctx context.Context)

func (f pollerFunc) Run(ctx context.Context) { f(ctx) }

func TestEngine_SweepsUntilStopped(t *testing.T) {
	svc := mocks.NewService(t)
	swept := make(chan struct{}, 8)
	svc.EXPECT().ProcessFinalized(mock.Anything).
		RunAndReturn(func(context.Context) (int, error) {
			select {
			case swept <- struct{}{}:
			default:
			}
			return 1, nil
		})

	polled := make(chan struct{})
	poller := pollerFunc(func(ctx context.Context) {
		close(polled)
		<-ctx.Done()
	})

	engine := bridge.NewEngine(&config.BridgeConfig{SweepInterval: 10 * time.Millisecond}, svc, zap.NewNop(), poller)
	require.NoError(t, engine.Start(context.Background()))

	for i := 0; i < 2; i++ {
		select {
		case <-swept:
		case <-time.After(2 * time.Second):
			t.Fatal("finality sweep did not run")
		}
	}
	select {
	case <-polled:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not start")
	}

	engine.Stop()
}

func TestEngine_SweepErrorsDoNotStopLoop(t *testing.T) {
	svc := mocks.NewService(t)
	calls := make(chan struct{}, 8)
	svc.EXPECT().ProcessFinalized(mock.Anything).
		RunAndReturn(func(context.Context) (int, error) {
			select {
			case calls <- struct{}{}:
			default:
			}
			return 0, errors.New("rpc unavailable")
		})

	engine := bridge.NewEngine(&config.BridgeConfig{SweepInterval: 10 * time.Millisecond}, svc, zap.NewNop())
	require.NoError(t, engine.Start(context.Background()))

	for i := 0; i < 2; i++ {
		select {
		case <-calls:
		case <-time.After(2 * time.Second):
			t.Fatal("finality sweep stopped after an error")
		}
	}
	engine.Stop()
}

func TestEngine_RejectsInvalidInterval(t *testing.T) {
	engine := bridge.NewEngine(&config.BridgeConfig{}, mocks.NewService(t), zap.NewNop())
	require.Error(t, engine.Start(context.Background()))
}
