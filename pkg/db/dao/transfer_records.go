package dao

import (
	"time"

	"github.com/uptrace/bun"
)

// TransferRecordDao is a data access object that maps directly to the 'transfer_records' table in PostgreSQL.
type TransferRecordDao struct {
	bun.BaseModel `bun:"table:transfer_records,alias:tr"`
	OriginChain   string    `json:"origin_chain" bun:",pk,type:varchar(100)"`
	TransferID    string    `json:"transfer_id" bun:",pk,type:varchar(66)"`
	AmountUSD     string    `json:"amount_usd" bun:",notnull,type:numeric(78,0)"`
	OriginBlock   int64     `json:"origin_block" bun:",notnull,use_zero"`
	UpdatedAt     time.Time `json:"updated_at" bun:",notnull,nullzero,default:current_timestamp"`
}
