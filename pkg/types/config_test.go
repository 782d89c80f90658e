package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "valid sqlite config",
			config:  Config{Backend: BackendSQLite, DataDir: "/tmp/scribe"},
			wantErr: nil,
		},
		{
			name:    "empty backend",
			config:  Config{DataDir: "/tmp/scribe"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend",
			config:  Config{Backend: "postgres"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "empty data dir is allowed",
			config:  Config{Backend: BackendSQLite},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDeriveURI(t *testing.T) {
	assert.Equal(t, "notes", DeriveURI("", "notes"))
	assert.Equal(t, "work/notes", DeriveURI("work", "notes"))
}
