// Package roomcli is the client library for the lofid daemon. Every window
// and the lofi CLI talk to the daemon through a Client: framed JSON requests
// over the local transport, plus a Listen loop receiving pushed sync and
// tick updates.
package roomcli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/lofiroom/lofid/common"
)

type Client struct {
	mu   *sync.RWMutex
	d    *Dispatcher
	conn net.Conn
}

// NewClient connects to the daemon over the platform transport with TCP
// fallback.
func NewClient() (*Client, error) {
	conn, err := dial()
	if err != nil {
		return nil, fmt.Errorf("error connecting to server: %s", err.Error())
	}
	return newClient(conn), nil
}

// NewClientFromURI connects to an explicit daemon endpoint.
func NewClientFromURI(rawURI string) (*Client, error) {
	uri, err := ParseDaemonURI(rawURI)
	if err != nil {
		return nil, err
	}
	conn, err := dialURI(uri)
	if err != nil {
		return nil, fmt.Errorf("error connecting to server: %s", err.Error())
	}
	return newClient(conn), nil
}

func newClient(conn net.Conn) *Client {
	return &Client{
		conn: conn,
		mu:   &sync.RWMutex{},
		d:    &Dispatcher{},
	}
}

// Dispatcher exposes the pushed-update dispatcher for handler registration.
func (c *Client) Dispatcher() *Dispatcher {
	return c.d
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Listen blocks reading pushed updates until the connection drops or a
// handler returns ErrDisconnect.
func (c *Client) Listen() (err error) {
	defer c.conn.Close()
	for {
		c.mu.RLock()
		var buf []byte
		buf, err = read(c.conn)
		if err != nil {
			c.mu.RUnlock()
			err = fmt.Errorf("error reading: %s", err.Error())
			return
		}
		err = c.d.process(buf)
		if err != nil {
			c.mu.RUnlock()
			if err == ErrDisconnect {
				return nil
			}
			err = fmt.Errorf("error processing: %s", err.Error())
			return
		}
		c.mu.RUnlock()
	}
}

func (c *Client) invoke(method common.UpdateType, message any) (json.RawMessage, error) {
	// Block the updates listener while invoking a method so the reply is
	// consumed here instead.
	c.mu.Lock()
	defer c.mu.Unlock()
	buf, err := json.Marshal(&Request{
		Method:  method,
		Message: message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %s", method, err.Error())
	}
	err = write(c.conn, buf)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %s", method, err.Error())
	}
	buf, err = read(c.conn)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %s", method, err.Error())
	}
	var res Response
	err = json.Unmarshal(buf, &res)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %s", method, err.Error())
	}
	if !res.Ok {
		return nil, errors.New(res.Error)
	}
	if res.Update == nil {
		return nil, nil
	}
	return res.Update.Message, nil
}
