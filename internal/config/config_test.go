package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		want    string
		wantErr bool
	}{
		{"string form", `"720h"`, "720h0m0s", false},
		{"numeric nanoseconds", `3600000000000`, "1h0m0s", false},
		{"garbage", `true`, "", true},
		{"bad string", `"soon"`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalJSON([]byte(tt.json))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration.String())
		})
	}
}

func TestReadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"mode": "production",
		"addr": ":8080",
		"domain": "example.com",
		"snapshot_dir": "/var/lib/minedata/snapshots",
		"postgres": {"host": "db", "port": 5432, "user": "app", "password": "secret", "db_name": "minedata"},
		"jwt": {"token_lifetime": "720h", "private_key_path": "key.pem", "public_key_path": "key.pub.pem"}
	}`), 0644))

	var c Config
	require.NoError(t, ReadConfig(path, &c))
	assert.True(t, c.Production())
	assert.False(t, c.Development())
	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, "/var/lib/minedata/snapshots", c.SnapshotDir)
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=minedata", c.Postgres.DbUrl())
	assert.Equal(t, "720h0m0s", c.Jwt.TokenLifetime.Duration.String())
}
