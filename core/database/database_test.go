package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "merch",
			Driver:         DriverMySQL,
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.EqualError(t, err, `unsupported database driver "oracle"`)
		assert.Nil(t, db)
	})

	t.Run("SQLite File", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: filepath.Join(t.TempDir(), "merch.db")})
		require.NoError(t, err)
		require.NotNil(t, db)

		type widget struct {
			ID   uint
			Name string
		}
		require.NoError(t, Migrate(db, &widget{}))
		assert.True(t, db.Migrator().HasTable(&widget{}))
	})
}
