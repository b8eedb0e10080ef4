package roomcli

import (
	"encoding/json"

	"github.com/lofiroom/lofid/common"
)

// Handler processes one pushed update from the daemon. Implementations
// receive the raw JSON message and are responsible for decoding it.
type Handler interface {
	Handle(json.RawMessage) error
}

// SyncHandler processes pushed document sync updates. The key filters
// updates to a single document; pass an empty string to receive all keys.
type SyncHandler struct {
	Key      string
	Callback func(*common.SyncUpdate) error
}

// NewSyncHandler creates a handler for pushed document updates.
func NewSyncHandler(key string, callback func(*common.SyncUpdate) error) *SyncHandler {
	return &SyncHandler{Key: key, Callback: callback}
}

func (h *SyncHandler) Handle(m json.RawMessage) error {
	var v common.SyncUpdate
	err := json.Unmarshal(m, &v)
	if err != nil {
		return err
	}
	if h.Key != "" && v.Key != h.Key {
		return nil
	}
	return h.Callback(&v)
}

// TickHandler processes pushed timer updates. The action filters updates to
// one tick action; pass an empty string to receive all actions.
type TickHandler struct {
	Action   common.TickAction
	Callback func(*common.TickUpdate) error
}

// NewTickHandler creates a handler for pushed timer updates.
func NewTickHandler(action common.TickAction, callback func(*common.TickUpdate) error) *TickHandler {
	return &TickHandler{Action: action, Callback: callback}
}

func (h *TickHandler) Handle(m json.RawMessage) error {
	var v common.TickUpdate
	err := json.Unmarshal(m, &v)
	if err != nil {
		return err
	}
	if h.Action != "" && v.Action != h.Action {
		return nil
	}
	return h.Callback(&v)
}
