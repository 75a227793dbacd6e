package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"detectivequest/internal/config"
	"github.com/stretchr/testify/require"
)

func TestPopulate(t *testing.T) {
	type args struct {
		v         any
		lookupEnv func(string) (string, bool)
	}
	tests := []struct {
		name    string
		args    args
		want    any
		wantErr error
	}{
		{
			name: "nil",
			args: args{
				v:         nil,
				lookupEnv: func(_ string) (string, bool) { return "", false },
			},
			wantErr: config.ErrInvalidValue,
		},
		{
			name: "not pointer",
			args: args{
				v:         struct{}{},
				lookupEnv: func(_ string) (string, bool) { return "", false },
			},
			wantErr: config.ErrInvalidValue,
		},
		{
			name: "empty env",
			args: args{
				v: &struct {
					EnvVar string `env:"ENV_VAR"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "", false },
			},
			wantErr: config.ErrEnvNotSet,
		},
		{
			name: "picks correct env variable",
			args: args{
				v: &struct {
					EnvVar     string `env:"ENV_VAR"`
					EnvVar2    string `env:"ENV_VAR2"`
					OtherValue string
				}{},
				lookupEnv: func(s string) (string, bool) { return strings.ToLower(s), true },
			},
			want: &struct {
				EnvVar     string `env:"ENV_VAR"`
				EnvVar2    string `env:"ENV_VAR2"`
				OtherValue string
			}{EnvVar: "env_var", EnvVar2: "env_var2"},
		},
		{
			name: "handles default value",
			args: args{
				v: &struct {
					EnvVarDefault string `env:"ENV_VAR_DEFAULT" envDefault:"default"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "", false },
			},
			want: &struct {
				EnvVarDefault string `env:"ENV_VAR_DEFAULT" envDefault:"default"`
			}{EnvVarDefault: "default"},
		},
		{
			name: "reads bools",
			args: args{
				v: &struct {
					Strict  bool `env:"STRICT"`
					Verbose bool `env:"VERBOSE" envDefault:"false"`
				}{},
				lookupEnv: func(s string) (string, bool) { return "yes", s == "STRICT" },
			},
			want: &struct {
				Strict  bool `env:"STRICT"`
				Verbose bool `env:"VERBOSE" envDefault:"false"`
			}{Strict: true},
		},
		{
			name: "rejects other kinds",
			args: args{
				v: &struct {
					EnvVar int `env:"ENV_VAR" envDefault:"3"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "", false },
			},
			wantErr: config.ErrInvalidValue,
		},
		{
			name: "reports every bad field",
			args: args{
				v: &struct {
					Missing string `env:"MISSING"`
					Count   int    `env:"COUNT" envDefault:"1"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "", false },
			},
			wantErr: config.ErrEnvNotSet,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.Populate(tt.args.v, tt.args.lookupEnv)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, tt.args.v)
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(func(string) (string, bool) { return "", false })
	require.NoError(t, err)
	require.Equal(t, "info", cfg.LogLevel)
	require.Empty(t, cfg.CasePath)
	require.False(t, cfg.Strict)
	require.Equal(t, "127.0.0.1:8765", cfg.MCPAddr)
}

func TestLoadFromEnv(t *testing.T) {
	env := map[string]string{
		"DETECTIVE_STRICT":   "yes",
		"DETECTIVE_CASE":     "cases/mansion.ini",
		"DETECTIVE_MCP_ADDR": ":9000",
	}
	cfg, err := config.Load(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	require.NoError(t, err)
	require.True(t, cfg.Strict)
	require.Equal(t, "cases/mansion.ini", cfg.CasePath)
	require.Equal(t, ":9000", cfg.MCPAddr)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("DETECTIVE_TEST_DOTENV=from-file\n"), 0o600))
	t.Setenv("DETECTIVE_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("DETECTIVE_TEST_DOTENV"))

	require.NoError(t, config.LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	require.Equal(t, "from-file", os.Getenv("DETECTIVE_TEST_DOTENV"))
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "1", "-1", " yes "} {
		require.True(t, config.ParseBool(v), v)
	}
	for _, v := range []string{"", "false", "0", "no", "maybe"} {
		require.False(t, config.ParseBool(v), v)
	}
}
