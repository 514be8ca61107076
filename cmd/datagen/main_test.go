package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/simaogato/wealthflow-datagen/internal/logging"
)

type stubCloser struct {
	err error
}

func (c stubCloser) Close() error { return c.err }

type stubServer struct {
	err error
}

func (s stubServer) Shutdown(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("shutdown without deadline")
	}
	return s.err
}

func observedLogger() (*logging.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &logging.Logger{Logger: zap.New(core)}, logs
}

func TestCloseDB(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel zapcore.Level
		wantMsg   string
	}{
		{name: "Clean close", err: nil, wantLevel: zapcore.InfoLevel, wantMsg: "Database connection closed"},
		{name: "Close error is logged", err: errors.New("bad connection"), wantLevel: zapcore.WarnLevel, wantMsg: "Failed to close database connection"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := observedLogger()

			closeDB(stubCloser{err: tt.err}, logger)

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantLevel, entries[0].Level)
			assert.Equal(t, tt.wantMsg, entries[0].Message)
		})
	}
}

func TestShutdownServer(t *testing.T) {
	logger, logs := observedLogger()
	shutdownServer(stubServer{}, logger)
	assert.Zero(t, logs.Len())

	shutdownServer(stubServer{err: context.DeadlineExceeded}, logger)
	warnings := logs.FilterMessage("Failed to shut down metrics server").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, zapcore.WarnLevel, warnings[0].Level)
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCommand()

	once := cmd.Flags().Lookup("once")
	require.NotNil(t, once)
	assert.Equal(t, "false", once.DefValue)

	migrate, _, err := cmd.Find([]string{"migrate"})
	require.NoError(t, err)
	assert.Equal(t, "migrate", migrate.Name())
}
