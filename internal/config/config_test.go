package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func resetFlagsAndArgs() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	os.Args = []string{"cmd"}

}

func setEnv(t *testing.T) {
	t.Setenv("RUN_ADDRESS", "localhost:9000")
	t.Setenv("DATA_DIR", "/var/lib/payactiv")
	t.Setenv("UPLOAD_DIR", "/var/lib/payactiv/uploads")
	t.Setenv("ADMIN_EMAIL", "root@example.com")
	t.Setenv("ADMIN_PASSWORD", "seed-password")
	t.Setenv("AUTOSAVE_INTERVAL", "1m")
	t.Setenv("LOG_LVL", "debug")
}

func TestNew(t *testing.T) {
	resetFlagsAndArgs()
	setEnv(t)
	os.Args = []string{
		"cmd",
		"-a", "localhost:8080",
		"-d", "./testdata",
		"-u", "./testuploads",
		"-s", "30s",
		"-l", "error",
	}
	cfg := New()

	assert.Equal(t, "localhost:8080", cfg.Address)
	assert.Equal(t, "./testdata", cfg.DataDir)
	assert.Equal(t, "./testuploads", cfg.UploadDir)
	assert.Equal(t, "root@example.com", cfg.AdminEmail)
	assert.Equal(t, "seed-password", cfg.AdminPassword)
	assert.Equal(t, 30*time.Second, cfg.AutosaveInterval)
	assert.Equal(t, "error", cfg.LogLvl)
}

func TestNewFromEnvOnly(t *testing.T) {
	resetFlagsAndArgs()
	setEnv(t)

	cfg := New()

	assert.Equal(t, "localhost:9000", cfg.Address)
	assert.Equal(t, "/var/lib/payactiv", cfg.DataDir)
	assert.Equal(t, time.Minute, cfg.AutosaveInterval)
	assert.Equal(t, "debug", cfg.LogLvl)
}
