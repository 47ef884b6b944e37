// Package repomanager hands out repositories bound to a bolt transaction.
package repomanager

import (
	"context"

	"github.com/boltdb/bolt"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/resetcodes"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/scores"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	// Init creates the buckets the repositories need.
	Init(ctx context.Context) error
	DB() *bolt.DB
	Users(tx *bolt.Tx) users.Repository
	ResetCodes(tx *bolt.Tx) resetcodes.Repository
	Scores(tx *bolt.Tx) scores.Repository
	Close() error
}
