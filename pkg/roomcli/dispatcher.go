package roomcli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lofiroom/lofid/common"
)

// Dispatcher routes pushed updates to registered handlers by update type.
type Dispatcher struct {
	Handlers map[common.UpdateType]Handler
}

var ErrDisconnect error = errors.New("disconnect")

// On registers a handler for the given pushed update type.
func (d *Dispatcher) On(t common.UpdateType, h Handler) {
	if d.Handlers == nil {
		d.Handlers = make(map[common.UpdateType]Handler)
	}
	d.Handlers[t] = h
}

func (d *Dispatcher) process(buf []byte) error {
	var res Response
	err := json.Unmarshal(buf, &res)
	if err != nil {
		return fmt.Errorf("failed to parse (%s): '%s'", err.Error(), string(buf))
	}
	if !res.Ok {
		return errors.New(res.Error)
	}
	if res.Update == nil {
		return nil
	}
	if h, ok := d.Handlers[res.Update.Type]; ok {
		return h.Handle(res.Update.Message)
	}
	return nil
}
