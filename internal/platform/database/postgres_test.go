package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostgresConfig_Strings(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db",
		Port:     5432,
		User:     "travel",
		Password: "p@ss",
		DBName:   "travel",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=travel password=p@ss dbname=travel sslmode=disable", cfg.DSN())
	assert.Equal(t, "postgres://travel:p%40ss@db:5432/travel?sslmode=disable", cfg.DatabaseURL())
}
