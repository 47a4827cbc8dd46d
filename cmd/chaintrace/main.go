package main

import (
	"github.com/safebite/chaintrace/internal/chain"
	"github.com/safebite/chaintrace/internal/config"
	"github.com/safebite/chaintrace/internal/observability"
	"github.com/safebite/chaintrace/internal/server"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,

		// Ledger gateway
		chain.Module,

		// HTTP surface
		server.Module,
	)
	app.Run()
}
