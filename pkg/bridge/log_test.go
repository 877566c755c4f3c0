package bridge_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/chainsafe/insured-bridge/pkg/bridge"
	"github.com/chainsafe/insured-bridge/pkg/bridge/mocks"
)

func TestLogService_LogsOutcome(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	svc := mocks.NewService(t)
	logged := bridge.NewLog(svc, zap.New(core))

	receipt := &bridge.TransferReceipt{MessageID: "msg-1", Fee: eth(0), AmountUSD: eth(2000)}
	svc.EXPECT().InitiateTransfer(mock.Anything, mock.Anything).Return(receipt, nil).Once()
	svc.EXPECT().ReceiveTransfer(mock.Anything, remoteChain, mock.Anything).Return(errors.New("boom")).Once()

	got, err := logged.InitiateTransfer(context.Background(), transferRequest(eth(1)))
	require.NoError(t, err)
	assert.Same(t, receipt, got)

	err = logged.ReceiveTransfer(context.Background(), remoteChain, []byte{0x01})
	require.Error(t, err)

	assert.Equal(t, 1, logs.FilterMessage("InitiateTransfer completed").Len())
	failed := logs.FilterMessage("ReceiveTransfer failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.ErrorLevel, failed[0].Level)
	assert.Equal(t, "boom", failed[0].ContextMap()["error"])
}
