package cmd

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/lofiroom/lofid/internal/api"
	"github.com/lofiroom/lofid/internal/notify"
	"github.com/lofiroom/lofid/internal/server"
	"github.com/lofiroom/lofid/internal/storage"
	"github.com/lofiroom/lofid/pkg/focuslib"
	"github.com/lofiroom/lofid/pkg/logger"
)

// DaemonComponents holds all initialized daemon components.
// This allows for unified initialization and cleanup across
// console mode and Windows service mode.
type DaemonComponents struct {
	Store         *storage.SqliteStore
	Queue         *focuslib.Queue
	Timer         *focuslib.Timer
	Events        *focuslib.EventBook
	Alarms        *focuslib.AlarmBook
	EventReminder *focuslib.EventReminder
	AlarmReminder *focuslib.AlarmReminder
	Api           *api.Api
	Server        *server.Server
	logger        logger.Logger
}

// Serve runs the reminder engines and the socket server until the context
// is canceled. The web bridge is started by the server itself.
func (c *DaemonComponents) Serve(ctx context.Context) error {
	go c.EventReminder.Run(ctx)
	go c.AlarmReminder.Run(ctx)
	return c.Server.Start(ctx)
}

// Close releases all daemon component resources in reverse order of initialization.
// This ensures proper cleanup regardless of how the daemon was started.
func (c *DaemonComponents) Close() {
	c.logger.Info("Shutting down daemon...")

	// Halts the countdown loop and cancels pending snooze deliveries.
	if c.Api != nil {
		_ = c.Api.Close()
	}

	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			c.logger.Error("Error closing document store: %v", err)
		}
	}

	c.logger.Info("Daemon stopped")
}

// initDaemonComponents initializes all daemon components with the provided logger.
// This is the shared initialization used by both console mode and Windows service mode.
// Returns the initialized components or an error if initialization fails.
//
// On error, any partially initialized components are cleaned up before returning.
var initDaemonComponents = func(lg logger.Logger) (*DaemonComponents, error) {
	stdLog := log.Default()

	dir, err := configDir()
	if err != nil {
		lg.Error("Config directory unavailable: %v", err)
		return nil, err
	}

	store, err := storage.OpenSqlite(filepath.Join(dir, dbFileName))
	if err != nil {
		lg.Error("Document store initialization failed: %v", err)
		return nil, err
	}

	queue := focuslib.NewQueue(stdLog, store, nil)
	timer := focuslib.NewTimer(stdLog, queue)
	events := focuslib.NewEventBook(stdLog, store)
	alarms := focuslib.NewAlarmBook(stdLog, store)

	sink := notify.NewLogSink(stdLog)
	speech := notify.NewSpeech(stdLog)

	s, err := api.NewApi(stdLog, store, queue, timer, events, alarms, sink, speech)
	if err != nil {
		lg.Error("API initialization failed: %v", err)
		store.Close()
		return nil, err
	}

	rpc := server.NewRPCServer(&server.RPCConfig{
		Secret:  os.Getenv(webSecretEnv),
		Version: currentBuildArgs.Version,
	}, s)
	ws := server.NewWebServer(stdLog, rpc, server.NewRPCNotifier(stdLog), DEF_PORT+1)

	serv := server.NewServer(stdLog, ws, DEF_PORT)
	s.RegisterHandlers(serv)
	s.SetPushNotifier(ws.Notifier())

	evr := focuslib.NewEventReminder(stdLog, events, s.ReminderSink(), speech)
	evr.SetOnMutate(func() { s.PushSync(focuslib.EventStorageKey) })
	alr := focuslib.NewAlarmReminder(stdLog, alarms, s.ReminderSink(), speech)
	alr.SetOnMutate(func() { s.PushSync(focuslib.AlarmStorageKey) })

	return &DaemonComponents{
		Store:         store,
		Queue:         queue,
		Timer:         timer,
		Events:        events,
		Alarms:        alarms,
		EventReminder: evr,
		AlarmReminder: alr,
		Api:           s,
		Server:        serv,
		logger:        lg,
	}, nil
}
