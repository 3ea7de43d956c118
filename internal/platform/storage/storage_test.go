package storage

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeppelin-cash/internal/client"
	"github.com/zeppelin-cash/internal/config"
	"github.com/zeppelin-cash/internal/domain/money"
	"github.com/zeppelin-cash/internal/platform/metrics"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	opened := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		cfg        config.Config
		wantLocal  bool
		wantErr    bool
		checkFiles bool
	}{
		{
			name:      "SingleBook",
			cfg:       config.Config{Book: config.BookConfig{Single: true}, Storage: config.StorageConfig{Backend: config.StorageMemory}},
			wantLocal: true,
		},
		{
			name: "Memory",
			cfg:  config.Config{Storage: config.StorageConfig{Backend: config.StorageMemory}},
		},
		{
			name:       "File",
			cfg:        config.Config{Storage: config.StorageConfig{Backend: config.StorageFile, FileDir: "/books"}},
			checkFiles: true,
		},
		{
			name:    "Unknown",
			cfg:     config.Config{Storage: config.StorageConfig{Backend: "redis"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			stores, err := Open(ctx, slog.Default(), &tt.cfg, fs, metrics.New())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer stores.Close(ctx)

			assert.Nil(t, stores.Outbox)
			assert.Nil(t, stores.Archive)
			_, isLocal := stores.Client.(*client.LocalClient)
			assert.Equal(t, tt.wantLocal, isLocal)

			require.NoError(t, stores.Client.OpenBook(ctx, "alice", opened, money.USD()))
			_, err = stores.Client.AddAccount(ctx, "alice", "Petty cash", true)
			require.NoError(t, err)

			if tt.checkFiles {
				entries, err := afero.ReadDir(fs, "/books")
				require.NoError(t, err)
				assert.NotEmpty(t, entries)
			}

			accounts, err := stores.Client.ListAccounts(ctx, "alice", opened)
			require.NoError(t, err)
			assert.Len(t, accounts, 15)
		})
	}
}
