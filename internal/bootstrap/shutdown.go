package bootstrap

import (
	"context"
	"log/slog"

	"github.com/hearthvale/craftforge/internal/database"
	"github.com/hearthvale/craftforge/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server *server.Server
	DBPool database.Pool
}

// GracefulShutdown performs graceful shutdown of all application components.
// It stops the HTTP server first so no new requests arrive, then closes
// the database pool once in-flight operations have drained.
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.DBPool != nil {
		components.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
