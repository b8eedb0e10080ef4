package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/lofiroom/lofid/cmd/common"
	lcommon "github.com/lofiroom/lofid/common"
	"github.com/lofiroom/lofid/pkg/focuslib"
)

var eventFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "start, s",
		Usage: "start time (2006-01-02T15:04)",
	},
	cli.StringFlag{
		Name:  "end, e",
		Usage: "end time (2006-01-02T15:04)",
	},
	cli.StringFlag{
		Name:  "location, l",
		Usage: "event location",
	},
	cli.StringFlag{
		Name:  "desc, d",
		Usage: "event description",
	},
}

var eventListFlags = []cli.Flag{
	cli.BoolFlag{
		Name:  "today, t",
		Usage: "only show events overlapping today",
	},
}

var reminderFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "minutes, m",
		Usage: "minutes before the event start to remind",
	},
	cli.BoolFlag{
		Name:  "off",
		Usage: "disable event reminders",
	},
	cli.BoolFlag{
		Name:  "on",
		Usage: "enable event reminders",
	},
	cli.BoolFlag{
		Name:  "no-tts",
		Usage: "do not speak reminders aloud",
	},
}

// eventTimeLayouts are tried in order when parsing --start and --end.
var eventTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.RFC3339,
}

func parseEventTime(s string) (time.Time, error) {
	for _, layout := range eventTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q, want 2006-01-02T15:04", s)
}

func addEvent(ctx *cli.Context) error {
	title := ctx.Args().First()
	if title == "" {
		return common.PrintErrWithCmdHelp(ctx, errors.New("no event title provided"))
	}
	if ctx.String("start") == "" || ctx.String("end") == "" {
		return common.PrintErrWithCmdHelp(ctx, errors.New("both --start and --end are required"))
	}
	start, err := parseEventTime(ctx.String("start"))
	if err != nil {
		return common.PrintErrWithCmdHelp(ctx, err)
	}
	end, err := parseEventTime(ctx.String("end"))
	if err != nil {
		return common.PrintErrWithCmdHelp(ctx, err)
	}
	client, err := getClient(ctx, "event")
	if err != nil {
		return nil
	}
	defer client.Close()
	res, err := client.AddEvent(&lcommon.AddEventParams{
		Title:       title,
		Location:    ctx.String("location"),
		Description: ctx.String("desc"),
		StartTime:   start,
		EndTime:     end,
	})
	if err != nil {
		common.PrintRuntimeErr(ctx, "event", "add_event", err)
		return nil
	}
	if res.Event != nil {
		fmt.Printf("Added event %q at %s\nId: %s\n",
			res.Event.Title, res.Event.StartTime.Format("Mon Jan 2 15:04"), res.Event.Id)
	}
	return nil
}

func listEvents(ctx *cli.Context) error {
	client, err := getClient(ctx, "event")
	if err != nil {
		return nil
	}
	defer client.Close()
	res, err := client.ListEvents(ctx.Bool("today"))
	if err != nil {
		common.PrintRuntimeErr(ctx, "event", "list_events", err)
		return nil
	}
	if len(res.Events) == 0 {
		fmt.Println("No events.")
		return nil
	}
	now := time.Now()
	for _, e := range res.Events {
		extra := ""
		if e.Location != "" {
			extra = " @ " + e.Location
		}
		fmt.Printf("[%-8s] %s - %s  %s%s  %s\n",
			e.StatusAt(now),
			e.StartTime.Format("Mon Jan 2 15:04"),
			e.EndTime.Format("15:04"),
			e.Title, extra, e.Id)
	}
	return nil
}

func deleteEvent(ctx *cli.Context) error {
	id := ctx.Args().First()
	if id == "" {
		return common.PrintErrWithCmdHelp(ctx, errors.New("no event id provided"))
	}
	client, err := getClient(ctx, "event")
	if err != nil {
		return nil
	}
	defer client.Close()
	res, err := client.DeleteEvent(id)
	if err != nil {
		common.PrintRuntimeErr(ctx, "event", "delete_event", err)
		return nil
	}
	fmt.Printf("Deleted. %d event(s) left.\n", len(res.Events))
	return nil
}

func clearPastEvents(ctx *cli.Context) error {
	client, err := getClient(ctx, "event")
	if err != nil {
		return nil
	}
	defer client.Close()
	res, err := client.ClearPastEvents()
	if err != nil {
		common.PrintRuntimeErr(ctx, "event", "clear_past_events", err)
		return nil
	}
	fmt.Printf("Removed %d past event(s).\n", res.Removed)
	return nil
}

func reminderSettings(ctx *cli.Context) error {
	client, err := getClient(ctx, "event")
	if err != nil {
		return nil
	}
	defer client.Close()

	changed := ctx.Bool("on") || ctx.Bool("off") || ctx.Bool("no-tts") || ctx.Int("minutes") > 0
	if !changed {
		res, err := client.GetReminderSettings()
		if err != nil {
			common.PrintRuntimeErr(ctx, "event", "reminder_settings", err)
			return nil
		}
		printReminderSettings(res.Settings)
		return nil
	}

	cur, err := client.GetReminderSettings()
	if err != nil {
		common.PrintRuntimeErr(ctx, "event", "reminder_settings", err)
		return nil
	}
	s := cur.Settings
	if ctx.Bool("on") {
		s.Enabled = true
	}
	if ctx.Bool("off") {
		s.Enabled = false
	}
	if ctx.Bool("no-tts") {
		s.UseTTS = false
	}
	if m := ctx.Int("minutes"); m > 0 {
		s.MinutesBefore = m
	}
	res, err := client.SetReminderSettings(s)
	if err != nil {
		common.PrintRuntimeErr(ctx, "event", "reminder_settings", err)
		return nil
	}
	printReminderSettings(res.Settings)
	return nil
}

func printReminderSettings(s focuslib.ReminderSettings) {
	state := "off"
	if s.Enabled {
		state = "on"
	}
	tts := "silent"
	if s.UseTTS {
		tts = "spoken"
	}
	fmt.Printf("Event reminders: %s, %d minutes before, %s.\n", state, s.MinutesBefore, tts)
}
