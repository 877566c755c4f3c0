package dao

import (
	"time"

	"github.com/uptrace/bun"
)

// ReorgedTransferDao is a data access object that maps directly to the 'reorged_transfers' table in PostgreSQL.
type ReorgedTransferDao struct {
	bun.BaseModel  `bun:"table:reorged_transfers,alias:rt"`
	ID             int64     `json:"id" bun:",pk,autoincrement"`
	OriginChain    string    `json:"origin_chain" bun:",notnull,type:varchar(100)"`
	TransferID     string    `json:"transfer_id" bun:",notnull,type:varchar(66)"`
	AmountUSD      string    `json:"amount_usd" bun:",notnull,type:numeric(78,0)"`
	OriginBlock    int64     `json:"origin_block" bun:",notnull,use_zero"`
	ClawbackNative string    `json:"clawback_native" bun:",notnull,type:numeric(78,0)"`
	DetectedAt     time.Time `json:"detected_at" bun:",notnull,nullzero,default:current_timestamp"`
}
