package dao

import (
	"time"

	"github.com/uptrace/bun"
)

// BridgeBalanceDao is a data access object that maps directly to the 'bridge_balances' table in PostgreSQL.
type BridgeBalanceDao struct {
	bun.BaseModel `bun:"table:bridge_balances,alias:bb"`
	Account       string    `json:"account" bun:",pk,type:varchar(100)"`
	Balance       string    `json:"balance" bun:",notnull,type:numeric(78,0)"`
	UpdatedAt     time.Time `json:"updated_at" bun:",notnull,nullzero,default:current_timestamp"`
}
