package cmd

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli"

	"github.com/lofiroom/lofid/cmd/common"
)

type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

// currentBuildArgs is captured by Execute for use by the daemon, which
// reports its version over the web bridge.
var currentBuildArgs BuildArgs

func Execute(args []string, bArgs BuildArgs) error {
	currentBuildArgs = bArgs
	app := cli.App{
		Name:                  "lofi",
		HelpName:              "lofi",
		Usage:                 "A focus timer with a shared schedule queue.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "lofi <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          common.UsageErrorCallback,
		Commands: append([]cli.Command{
			{
				Name:   "daemon",
				Action: getDaemonAction(),
			},
			{
				Name:   "stop",
				Usage:  "stops the background daemon",
				Action: stopDaemon,
			},
			{
				Name:                   "add",
				Aliases:                []string{"a"},
				Usage:                  "add a focus session to the queue",
				Action:                 addSession,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            AddDescription,
				UseShortOptionHandling: true,
				Flags:                  addFlags,
			},
			{
				Name:               "preset",
				Aliases:            []string{"p"},
				Usage:              "add a focus session from a preset",
				Action:             addPreset,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        PresetDescription,
			},
			{
				Name:                   "break",
				Aliases:                []string{"b"},
				Usage:                  "add a break to the queue",
				Action:                 addBreak,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            BreakDescription,
				UseShortOptionHandling: true,
				Flags:                  breakFlags,
			},
			{
				Name:               "queue",
				Aliases:            []string{"q", "list", "l"},
				Usage:              "display the schedule queue",
				Action:             showQueue,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        QueueDescription,
			},
			{
				Name:               "remove",
				Aliases:            []string{"rm"},
				Usage:              "remove a queue item by id",
				Action:             removeItem,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        RemoveDescription,
			},
			{
				Name:                   "clear",
				Usage:                  "clear completed items from the queue",
				Action:                 clearQueue,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            ClearDescription,
				UseShortOptionHandling: true,
				Flags:                  clearFlags,
			},
			{
				Name:   "start",
				Usage:  "start or resume the countdown",
				Action: startTimer,
			},
			{
				Name:   "pause",
				Usage:  "pause the countdown",
				Action: pauseTimer,
			},
			{
				Name:   "reset",
				Usage:  "reset the countdown to its full duration",
				Action: resetTimer,
			},
			{
				Name:   "skip",
				Usage:  "skip the current queue item",
				Action: skipItem,
			},
			{
				Name:                   "extend",
				Aliases:                []string{"e"},
				Usage:                  "extend the running countdown",
				Action:                 extendTimer,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            ExtendDescription,
				UseShortOptionHandling: true,
				Flags:                  minutesFlags,
			},
			{
				Name:                   "duration",
				Usage:                  "set the idle countdown duration",
				Action:                 setDuration,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				UseShortOptionHandling: true,
				Flags:                  minutesFlags,
			},
			{
				Name:               "status",
				Aliases:            []string{"s"},
				Usage:              "show the current timer state",
				Action:             showStatus,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        StatusDescription,
			},
			{
				Name:               "watch",
				Aliases:            []string{"w"},
				Usage:              "follow the countdown live",
				Action:             watch,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        WatchDescription,
			},
			{
				Name:         "event",
				Usage:        "manage calendar events and reminders",
				Description:  EventDescription,
				OnUsageError: common.UsageErrorCallback,
				Subcommands: []cli.Command{
					{
						Name:                   "add",
						Usage:                  "add a calendar event",
						Action:                 addEvent,
						UseShortOptionHandling: true,
						Flags:                  eventFlags,
					},
					{
						Name:                   "list",
						Usage:                  "list calendar events",
						Action:                 listEvents,
						UseShortOptionHandling: true,
						Flags:                  eventListFlags,
					},
					{
						Name:   "delete",
						Usage:  "delete a calendar event by id",
						Action: deleteEvent,
					},
					{
						Name:   "clear-past",
						Usage:  "drop events that already ended",
						Action: clearPastEvents,
					},
					{
						Name:                   "reminders",
						Usage:                  "show or change reminder settings",
						Action:                 reminderSettings,
						UseShortOptionHandling: true,
						Flags:                  reminderFlags,
					},
				},
			},
			{
				Name:         "alarm",
				Usage:        "manage wall-clock alarms",
				Description:  AlarmDescription,
				OnUsageError: common.UsageErrorCallback,
				Subcommands: []cli.Command{
					{
						Name:                   "add",
						Usage:                  "add an alarm at HH:MM",
						Action:                 addAlarm,
						UseShortOptionHandling: true,
						Flags:                  alarmFlags,
					},
					{
						Name:   "list",
						Usage:  "list alarms",
						Action: listAlarms,
					},
					{
						Name:   "delete",
						Usage:  "delete an alarm by id",
						Action: deleteAlarm,
					},
					{
						Name:   "on",
						Usage:  "enable an alarm",
						Action: enableAlarm,
					},
					{
						Name:   "off",
						Usage:  "disable an alarm",
						Action: disableAlarm,
					},
				},
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  common.Help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints the installed version of lofi",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             common.GetVersion,
			},
		}, platformCommands()...),
		Action:      showStatus,
		HideHelp:    true,
		HideVersion: true,
	}
	common.VersionCmdStr = fmt.Sprintf("%s %s (%s_%s)\nBuild: %s=%s\n",
		app.Name,
		app.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	return app.Run(args)
}
