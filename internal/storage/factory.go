package storage

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vatscope/internal/common"
	"github.com/ternarybob/vatscope/internal/interfaces"
	"github.com/ternarybob/vatscope/internal/storage/badger"
)

// NewFinancialResultStorage opens the result cache described by config.
// With caching disabled it returns a nil storage and a no-op close.
func NewFinancialResultStorage(logger arbor.ILogger, config *common.Config) (interfaces.FinancialResultStorage, func() error, error) {
	if !config.Storage.Badger.Enabled {
		logger.Debug().Msg("Financial result cache disabled")
		return nil, func() error { return nil }, nil
	}

	db, err := badger.NewBadgerDB(logger, &config.Storage.Badger)
	if err != nil {
		return nil, nil, err
	}
	return badger.NewFinancialStorage(db, logger), db.Close, nil
}
