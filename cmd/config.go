package cmd

import (
	"os"
	"path/filepath"

	"github.com/lofiroom/lofid/common"
)

const (
	// DEF_PORT is the TCP fallback port the daemon listens on. The web
	// bridge for browser surfaces listens on DEF_PORT+1.
	DEF_PORT = common.DefaultTCPPort

	// configDirEnv overrides the daemon config directory, mainly for tests.
	configDirEnv = "LOFID_CONFIG_DIR"

	// webSecretEnv carries the shared secret that enables the HTTP RPC
	// bridge. An empty secret leaves the bridge disabled.
	webSecretEnv = "LOFID_WEB_SECRET"

	dbFileName = "lofid.db"
)

// configDir returns the daemon's config directory, creating it if needed.
func configDir() (string, error) {
	if dir := os.Getenv(configDirEnv); dir != "" {
		return dir, os.MkdirAll(dir, 0755)
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "lofid")
	return dir, os.MkdirAll(dir, 0755)
}
