package seed

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

// Both the pool and a transaction must satisfy Querier so upserts run either
// standalone or inside the per-game transaction.
var (
	_ Querier = (*pgxpool.Pool)(nil)
	_ Querier = (pgx.Tx)(nil)
)

func TestNilEmpty(t *testing.T) {
	t.Parallel()

	assert.Nil(t, nilEmpty(""))
	assert.Equal(t, "LAL", nilEmpty("LAL"))
}
