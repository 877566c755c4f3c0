package dao

import (
	"time"

	"github.com/uptrace/bun"
)

// PoolPositionDao is a data access object that maps directly to the 'pool_positions' table in PostgreSQL.
type PoolPositionDao struct {
	bun.BaseModel `bun:"table:pool_positions,alias:pp"`
	Provider      string    `json:"provider" bun:",pk,type:varchar(42)"`
	Shares        string    `json:"shares" bun:",notnull,type:numeric(78,0)"`
	Baseline      string    `json:"baseline" bun:",notnull,type:numeric(78,0)"`
	Accrued       string    `json:"accrued" bun:",notnull,type:numeric(78,0)"`
	UpdatedAt     time.Time `json:"updated_at" bun:",notnull,nullzero,default:current_timestamp"`
}
