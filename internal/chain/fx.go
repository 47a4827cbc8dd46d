package chain

import (
	"github.com/safebite/chaintrace/internal/chain/gateway"
	"go.uber.org/fx"
)

var Module = fx.Module("chain.gateway",
	fx.Provide(gateway.New),
)
