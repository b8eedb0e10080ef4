//go:build windows

package cmd

import (
	"context"
	"log"
	"time"

	"github.com/urfave/cli"
	"golang.org/x/sys/windows/svc"

	daemonpkg "github.com/lofiroom/lofid/internal/daemon"
	"github.com/lofiroom/lofid/internal/service"
	"github.com/lofiroom/lofid/pkg/logger"
)

// getDaemonAction returns the platform-specific daemon action.
// On Windows, this detects service mode and uses Event Log.
func getDaemonAction() cli.ActionFunc {
	return daemonWindows
}

// daemonWindows detects if running as a Windows service and uses the appropriate logger.
// When running as a service, logs go to both console and Windows Event Log.
// When running as a console application, the standard daemon() function is used.
func daemonWindows(ctx *cli.Context) error {
	isService, err := svc.IsWindowsService()
	if err != nil {
		return err
	}

	if !isService {
		// Console mode - use existing daemon() function (unchanged behavior)
		return daemon(ctx)
	}

	// Service mode - use Event Log
	return runAsWindowsService()
}

// runAsWindowsService runs the daemon as a Windows service with Event Log integration.
func runAsWindowsService() error {
	stdLogger := logger.NewStandardLogger(log.Default())

	// Attempt to open Event Log
	eventLogger, err := logger.NewEventLogger(daemonpkg.DefaultServiceName)
	if err != nil {
		// Fallback: Event Log unavailable (not registered, permissions issue)
		// Use console-only logging
		return runServiceWithLogger(stdLogger)
	}
	defer eventLogger.Close()

	// Multi-backend: Console output + Event Log
	multiLogger := logger.NewMultiLogger(stdLogger, eventLogger)
	return runServiceWithLogger(multiLogger)
}

// runServiceWithLogger runs the Windows service handler with the given logger.
func runServiceWithLogger(lg logger.Logger) error {
	comps, err := initDaemonComponents(lg)
	if err != nil {
		return err
	}

	runner := daemonpkg.New(
		&daemonpkg.Config{
			ServiceName:     daemonpkg.DefaultServiceName,
			DisplayName:     daemonpkg.DefaultDisplayName,
			ShutdownTimeout: 10 * time.Second,
		},
		&daemonpkg.Dependencies{
			ServeFunc: func(ctx context.Context) error {
				return comps.Serve(ctx)
			},
			ShutdownFunc: func() error {
				comps.Close()
				return nil
			},
		},
	)

	handler := service.NewWindowsHandlerWithLogger(runner, &svcEventLogger{lg: lg})

	// svc.Run blocks until service stops
	return svc.Run(daemonpkg.DefaultServiceName, handler)
}

// svcEventLogger adapts logger.Logger to the service handler's logging
// interface, which takes pre-formatted messages.
type svcEventLogger struct {
	lg logger.Logger
}

func (a *svcEventLogger) Info(msg string) error {
	a.lg.Info("%s", msg)
	return nil
}

func (a *svcEventLogger) Warning(msg string) error {
	a.lg.Warning("%s", msg)
	return nil
}

func (a *svcEventLogger) Error(msg string) error {
	a.lg.Error("%s", msg)
	return nil
}

func (a *svcEventLogger) Close() error {
	return nil
}
