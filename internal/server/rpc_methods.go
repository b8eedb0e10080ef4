package server

import (
	"context"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"

	"github.com/lofiroom/lofid/common"
	"github.com/lofiroom/lofid/pkg/focuslib"
)

// Custom JSON-RPC error codes for room operations.
const (
	codeInvalidParams = jrpc2.Code(-32602)
	codeAddFailed     = jrpc2.Code(-32001)
)

// RPCConfig holds configuration for the JSON-RPC endpoint.
type RPCConfig struct {
	Secret    string // Auth token (required -- empty means HTTP RPC disabled)
	ListenAll bool   // If true, bind to 0.0.0.0 instead of 127.0.0.1
	Version   string // Daemon version
}

// Core is the slice of the daemon surface exposed to web clients. The api
// package implements it over the queue, timer and books.
type Core interface {
	TimerState() focuslib.TimerState
	StartTimer()
	PauseTimer()
	ResetTimer()
	SkipItem()
	ExtendTimer(minutes int)
	QueueSnapshot() common.QueueResponse
	AddSession(p common.AddSessionParams) (*focuslib.ScheduleItem, error)
	ListEvents(todayOnly bool) []*focuslib.EventItem
	ListAlarms() []*focuslib.AlarmItem
}

// RPCServer manages the JSON-RPC 2.0 bridge and method handlers for web
// surfaces: an HTTP POST bridge plus per-connection WebSocket servers.
type RPCServer struct {
	bridge  jhttp.Bridge
	methods handler.Map
	secret  string
	version string
	core    Core
}

// VersionResult is the response for system.getVersion.
type VersionResult struct {
	Version string `json:"version"`
}

// EmptyResult is a placeholder for methods that return no data.
type EmptyResult struct{}

// NewRPCServer creates a new RPCServer with method handlers and HTTP bridge.
func NewRPCServer(cfg *RPCConfig, core Core) *RPCServer {
	rs := &RPCServer{
		secret:  cfg.Secret,
		version: cfg.Version,
		core:    core,
	}

	rs.methods = handler.Map{
		"system.getVersion": handler.New(rs.systemGetVersion),
		"timer.state":       handler.New(rs.timerState),
		"timer.start":       handler.New(rs.timerStart),
		"timer.pause":       handler.New(rs.timerPause),
		"timer.reset":       handler.New(rs.timerReset),
		"timer.skip":        handler.New(rs.timerSkip),
		"timer.extend":      handler.New(rs.timerExtend),
		"queue.list":        handler.New(rs.queueList),
		"queue.add":         handler.New(rs.queueAdd),
		"events.list":       handler.New(rs.eventsList),
		"alarms.list":       handler.New(rs.alarmsList),
	}

	rs.bridge = jhttp.NewBridge(rs.methods, nil)
	return rs
}

func (rs *RPCServer) systemGetVersion(_ context.Context) (*VersionResult, error) {
	return &VersionResult{Version: rs.version}, nil
}

func (rs *RPCServer) timerState(_ context.Context) (*common.TimerResponse, error) {
	return &common.TimerResponse{State: rs.core.TimerState()}, nil
}

func (rs *RPCServer) timerStart(_ context.Context) (*common.TimerResponse, error) {
	rs.core.StartTimer()
	return &common.TimerResponse{State: rs.core.TimerState()}, nil
}

func (rs *RPCServer) timerPause(_ context.Context) (*common.TimerResponse, error) {
	rs.core.PauseTimer()
	return &common.TimerResponse{State: rs.core.TimerState()}, nil
}

func (rs *RPCServer) timerReset(_ context.Context) (*common.TimerResponse, error) {
	rs.core.ResetTimer()
	return &common.TimerResponse{State: rs.core.TimerState()}, nil
}

func (rs *RPCServer) timerSkip(_ context.Context) (*common.TimerResponse, error) {
	rs.core.SkipItem()
	return &common.TimerResponse{State: rs.core.TimerState()}, nil
}

func (rs *RPCServer) timerExtend(_ context.Context, p *common.ExtendParams) (*common.TimerResponse, error) {
	if p.Minutes <= 0 {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "minutes must be positive"}
	}
	rs.core.ExtendTimer(p.Minutes)
	return &common.TimerResponse{State: rs.core.TimerState()}, nil
}

func (rs *RPCServer) queueList(_ context.Context) (*common.QueueResponse, error) {
	q := rs.core.QueueSnapshot()
	return &q, nil
}

func (rs *RPCServer) queueAdd(_ context.Context, p *common.AddSessionParams) (*common.ItemResponse, error) {
	if p.Title == "" {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "missing required param: title"}
	}
	item, err := rs.core.AddSession(*p)
	if err != nil {
		return nil, &jrpc2.Error{Code: codeAddFailed, Message: err.Error()}
	}
	return &common.ItemResponse{Item: item}, nil
}

func (rs *RPCServer) eventsList(_ context.Context, p *common.ListEventsParams) (*common.EventListResponse, error) {
	return &common.EventListResponse{Events: rs.core.ListEvents(p.TodayOnly)}, nil
}

func (rs *RPCServer) alarmsList(_ context.Context) (*common.AlarmListResponse, error) {
	return &common.AlarmListResponse{Alarms: rs.core.ListAlarms()}, nil
}

// Close shuts down the jrpc2 bridge, releasing internal goroutines.
func (rs *RPCServer) Close() {
	rs.bridge.Close()
}
