package rpc

import (
	"log/slog"

	middleware "github.com/vmkteam/zenrpc-middleware"
	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/trading-admin/internal/sandbox"
)

func New(logger *slog.Logger, manager *sandbox.Manager) *zenrpc.Server {
	rpcService := NewDashboardService(manager)
	rpcServer := zenrpc.NewServer(zenrpc.Options{ExposeSMD: true})
	rpcServer.Register("dashboard", rpcService)
	rpcServer.Use(middleware.WithSLog(logger.InfoContext, "trading-admin", nil))

	return rpcServer
}
