// Package tournament builds and scores multi-round team tournaments on top of
// the persisted model in internal/db.
//
// Every operation runs in its own transaction. When the Service is bound to a
// connection that is already inside a transaction, operations nest as
// savepoints, so a failed step never poisons the caller's unit of work.
package tournament

import (
	"context"

	"ttt/internal/config"
	"ttt/internal/db"

	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	cfg config.Config
}

func New(conn *gorm.DB, cfg config.Config) *Service {
	return &Service{
		db:  conn,
		cfg: cfg,
	}
}

// inTx runs fn in a transaction and classifies the returned error.
func (s *Service) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.db == nil {
		return errNoDatabase
	}
	return db.Classify(s.db.WithContext(ctx).Transaction(fn))
}

func (s *Service) roundsCount() int {
	if s.cfg.RoundsCount > 0 {
		return s.cfg.RoundsCount
	}
	return db.DefaultRoundsCount
}
