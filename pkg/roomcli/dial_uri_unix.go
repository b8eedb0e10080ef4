//go:build !windows

package roomcli

import (
	"fmt"
	"net"
)

// dialURI connects to the daemon at an explicit endpoint.
func dialURI(uri *DaemonURI) (net.Conn, error) {
	switch uri.Scheme {
	case SchemeUnix:
		return dialFunc("unix", uri.Address)
	case SchemeTCP:
		return dialFunc("tcp", uri.Address)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, uri.Scheme)
	}
}
