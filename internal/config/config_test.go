package config_test

import (
	"testing"

	"app/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_RequiresPortAndSecret(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET", "s")
	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "")
	_, err = config.Load()
	assert.Error(t, err)
}

func TestLoad_DatabaseURLTakesPriority(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DATABASE_URL", "host=db port=5432 user=u password=p dbname=market sslmode=disable")
	t.Setenv("POSTGRES_HOST", "ignored")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=market sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, "dev", cfg.GoEnv)
}

func TestLoad_AssemblesDSNFromPostgresVars(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRES_HOST", "db.local")
	t.Setenv("POSTGRES_PORT", "")
	t.Setenv("POSTGRES_USER", "")
	t.Setenv("POSTGRES_PASSWORD", "")
	t.Setenv("POSTGRES_DB", "")
	t.Setenv("POSTGRES_SSLMODE", "")

	cfg, err := config.Load()
	assert.NoError(t, err)
	//未指定の項目は既定値で埋まる
	assert.Equal(t,
		"host=db.local port=5432 user=postgres password=postgres dbname=market sslmode=disable",
		cfg.DatabaseURL)
}
