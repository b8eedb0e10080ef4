package server

import (
	"os"
	"path/filepath"

	"github.com/lofiroom/lofid/common"
)

func socketPath() string {
	if path := os.Getenv(common.SocketPathEnv); path != "" {
		return path
	}
	return filepath.Join(os.TempDir(), "lofid.sock")
}
