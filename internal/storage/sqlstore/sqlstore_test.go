package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	t.Parallel()

	query := `SELECT a FROM t WHERE b = ? AND c IN (?, ?)`

	pg := &Store{dialect: Postgres}
	lite := &Store{dialect: SQLite}

	assert.Equal(t, `SELECT a FROM t WHERE b = $1 AND c IN ($2, $3)`, pg.rebind(query))
	assert.Equal(t, query, lite.rebind(query))
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
