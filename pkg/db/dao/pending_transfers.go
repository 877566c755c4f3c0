package dao

import (
	"time"

	"github.com/uptrace/bun"
)

// PendingTransferDao is a data access object that maps directly to the 'pending_transfers' table in PostgreSQL.
type PendingTransferDao struct {
	bun.BaseModel `bun:"table:pending_transfers,alias:pt"`
	TransferID    string    `json:"transfer_id" bun:",pk,type:varchar(66)"`
	AmountUSD     string    `json:"amount_usd" bun:",notnull,type:numeric(78,0)"`
	OriginBlock   int64     `json:"origin_block" bun:",notnull,use_zero"`
	CreatedAt     time.Time `json:"created_at" bun:",notnull,nullzero,default:current_timestamp"`
}
