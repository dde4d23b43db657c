package database

import (
	"net/url"
	"path/filepath"
	"testing"

	"github.com/klokku/finpulse/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnURL(t *testing.T) {
	// given
	cfg := config.Database{Host: "db", Port: 5433, User: "fin", Pass: "p@ss'word", Name: "ledger", Schema: "finpulse"}

	// when
	parsed, err := url.Parse(connURL(cfg))

	// then
	require.NoError(t, err)
	assert.Equal(t, "db:5433", parsed.Host)
	assert.Equal(t, "/ledger", parsed.Path)
	password, _ := parsed.User.Password()
	assert.Equal(t, "p@ss'word", password)
	assert.Equal(t, "finpulse", parsed.Query().Get("search_path"))
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
}

func TestMigrationsDir(t *testing.T) {
	// when
	dir, err := migrationsDir()

	// then
	require.NoError(t, err)
	assert.Equal(t, "migrations", filepath.Base(dir))
	assert.FileExists(t, filepath.Join(dir, "000001_init.up.sql"))
}
