package logging_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greenthumb/greenthumb-cli/pkg/logging"
)

func TestNewLevels(t *testing.T) {
	ctx := context.Background()

	verbose := logging.New(true)
	require.True(t, verbose.Enabled(ctx, slog.LevelDebug))

	quiet := logging.New(false)
	require.False(t, quiet.Enabled(ctx, slog.LevelInfo))
	require.True(t, quiet.Enabled(ctx, slog.LevelWarn))
}
