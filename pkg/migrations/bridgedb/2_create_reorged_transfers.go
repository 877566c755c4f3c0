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
		log.Println("creating reorged_transfers table...")
		if err := mghelper.CreateSchema(ctx, db, &dao.ReorgedTransferDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &dao.ReorgedTransferDao{}, "origin_chain", "transfer_id")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping reorged_transfers table...")
		return mghelper.DropTables(ctx, db, &dao.ReorgedTransferDao{})
	})
}
