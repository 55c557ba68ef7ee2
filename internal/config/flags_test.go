package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     *StructuredConfig
		wantRest []string
		wantErr  bool
	}{
		{
			name: "all flags and command",
			args: []string{
				"-r", "http://127.0.0.1:8080",
				"-api-version", "v1",
				"-request-timeout", "5s",
				"-d", "storage.db",
				"-k", "keystore.db",
				"-auth-window", "1m",
				"-n", "Ns",
				"-m", "aes-gcm",
				"-metrics",
				"-config", "cfg.json",
				"get", "my-key",
			},
			want: &StructuredConfig{
				App:     App{Namespace: "Ns", EncryptionMethod: "aes-gcm", MetricsEnabled: true},
				Storage: Storage{DB: DB{DSN: "storage.db"}, Keystore: Keystore{DSN: "keystore.db", AuthWindow: time.Minute}},
				Adapter: Adapter{Realm: "http://127.0.0.1:8080", APIVersion: "v1", RequestTimeout: 5 * time.Second},

				JSONFilePath: "cfg.json",
			},
			wantRest: []string{"get", "my-key"},
		},
		{
			name:     "no flags",
			args:     []string{"has", "k"},
			want:     &StructuredConfig{},
			wantRest: []string{"has", "k"},
		},
		{
			name:    "unknown flag",
			args:    []string{"-unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, rest, err := ParseFlags(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}
