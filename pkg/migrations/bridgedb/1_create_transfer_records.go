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
		log.Println("creating transfer_records table...")
		return mghelper.CreateSchema(ctx, db, &dao.TransferRecordDao{})
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping transfer_records table...")
		return mghelper.DropTables(ctx, db, &dao.TransferRecordDao{})
	})
}
