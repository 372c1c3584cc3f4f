package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Storage: Storage{Driver: "sqlite"},
		RateLimit: RateLimit{
			RedisAddress: "localhost:6379",
			Limit:        20,
			Window:       time.Minute,
		},
		Jobs: Jobs{RegistrationSweepInterval: time.Minute},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "Valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "Zero sweep interval",
			mutate:  func(c *Config) { c.Jobs.RegistrationSweepInterval = 0 },
			wantErr: "jobs.registration_sweep_interval must be positive",
		},
		{
			name:    "Negative sweep interval",
			mutate:  func(c *Config) { c.Jobs.RegistrationSweepInterval = -time.Second },
			wantErr: "jobs.registration_sweep_interval must be positive",
		},
		{
			name:    "Unknown driver",
			mutate:  func(c *Config) { c.Storage.Driver = "mysql" },
			wantErr: `unknown storage driver "mysql"`,
		},
		{
			name:    "Zero rate limit window",
			mutate:  func(c *Config) { c.RateLimit.Window = 0 },
			wantErr: "rate_limit.window must be positive",
		},
		{
			name:    "Zero rate limit",
			mutate:  func(c *Config) { c.RateLimit.Limit = 0 },
			wantErr: "rate_limit.limit must be positive",
		},
		{
			name: "Rate limit settings ignored without redis",
			mutate: func(c *Config) {
				c.RateLimit.RedisAddress = ""
				c.RateLimit.Window = 0
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
