package core

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setEnv(t *testing.T, kv map[string]string) {
	for k, v := range kv {
		orig, existed := os.LookupEnv(k)
		if err := os.Setenv(k, v); err != nil {
			t.Fatalf("os.Setenv() failed: %v", err)
		}
		k := k
		t.Cleanup(func() {
			if existed {
				_ = os.Setenv(k, orig)
			} else {
				_ = os.Unsetenv(k)
			}
		})
	}
}

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setEnv(t, map[string]string{"ENV": "test"})
		conf := NewConfig()
		assert.Equal(t, "TEST", conf.Env)
		assert.True(t, conf.TestMode)
		assert.Equal(t, "Grace Marks", conf.AppName)
		assert.Equal(t, "", conf.SeedFile)
		assert.Equal(t, ":8000", conf.Server.Address)
		assert.Equal(t, 5*time.Second, conf.Server.ShutdownTimeout)
	})

	t.Run("env vars are prefixed with the env name", func(t *testing.T) {
		setEnv(t, map[string]string{
			"ENV":                      "qa",
			"QA_DEBUG":                 "false",
			"QA_SEEDFILE":              "/tmp/seed.json",
			"QA_SERVER_ADDRESS":        ":9000",
			"QA_SERVER_READTIMEOUT":    "10s",
			"TEST_SERVER_ADDRESS":      ":1234",
			"QA_SERVER_DISABLEREQLOGS": "true",
		})
		conf := NewConfig()
		assert.Equal(t, "QA", conf.Env)
		assert.False(t, conf.TestMode)
		assert.False(t, conf.Debug)
		assert.Equal(t, "/tmp/seed.json", conf.SeedFile)
		assert.Equal(t, ":9000", conf.Server.Address)
		assert.Equal(t, 10*time.Second, conf.Server.ReadTimeout)
		assert.True(t, conf.Server.DisableReqLogs)
	})
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Chess Rule", CleanString("  Chess Rule \t"))
	assert.Equal(t, "mark", CleanString(" MARK ", true))
	assert.Equal(t, "", CleanString("   "))
}
