package bridgedb

import (
	"context"
	"log"

	"github.com/chainsafe/insured-bridge/pkg/db/dao"
	mghelper "github.com/chainsafe/insured-bridge/pkg/pgutil/migrations"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating pending_transfers table...")
		if err := mghelper.CreateSchema(ctx, db, &dao.PendingTransferDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &dao.PendingTransferDao{}, "origin_block")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping pending_transfers table...")
		return mghelper.DropTables(ctx, db, &dao.PendingTransferDao{})
	})
}
