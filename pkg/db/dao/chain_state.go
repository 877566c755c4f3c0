package dao

import (
	"time"

	"github.com/uptrace/bun"
)

// ChainStateDao is a data access object that maps directly to the 'chain_state' table in PostgreSQL.
// It holds the last risk snapshot received from a counterpart chain.
type ChainStateDao struct {
	bun.BaseModel         `bun:"table:chain_state,alias:cs"`
	ChainID               string    `json:"chain_id" bun:",pk,type:varchar(100)"`
	InsuranceFundUSD      string    `json:"insurance_fund_usd" bun:",notnull,type:numeric(78,0)"`
	AvailableLiquidityUSD string    `json:"available_liquidity_usd" bun:",notnull,type:numeric(78,0)"`
	OriginBlock           int64     `json:"origin_block" bun:",notnull,use_zero"`
	UpdatedAt             time.Time `json:"updated_at" bun:",notnull,nullzero,default:current_timestamp"`
}
