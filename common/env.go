// Package common provides the shared wire types and constants used across
// the lofid client-server communication layer.
package common

import "time"

// Environment variable names for configuration.
const (
	// SocketPathEnv is the environment variable for a custom socket path.
	SocketPathEnv = "LOFID_SOCKET_PATH"

	// TCPPortEnv is the environment variable for a custom TCP port.
	TCPPortEnv = "LOFID_TCP_PORT"

	// ForceTCPEnv is the environment variable to force TCP connections.
	ForceTCPEnv = "LOFID_FORCE_TCP"

	// DebugEnv is the environment variable to enable debug logging.
	DebugEnv = "LOFID_DEBUG"

	// PipeNameEnv is the environment variable for a custom Windows pipe name.
	PipeNameEnv = "LOFID_PIPE_NAME"
)

// TCP fallback transport settings. The daemon binds loopback only.
const (
	TCPHost        = "127.0.0.1"
	DefaultTCPPort = 3947
)

// DefaultDialTimeout bounds a single connection attempt to the daemon.
const DefaultDialTimeout = 5 * time.Second
