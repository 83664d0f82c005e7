// Package modkit assembles API modules from shared deps and options
package modkit

import (
	"scopegen/internal/modkit/module"
	"scopegen/internal/modkit/repokit"
	"scopegen/internal/platform/config"
	"scopegen/internal/platform/logger"
	"scopegen/internal/platform/store"
)

// Module is the contract api.Mount works against
type Module = module.Module

// Deps are handed to every module constructor; nil stores mean disabled
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}
