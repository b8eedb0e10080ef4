package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli"

	"github.com/lofiroom/lofid/cmd/common"
	lcommon "github.com/lofiroom/lofid/common"
	"github.com/lofiroom/lofid/pkg/focuslib"
)

var alarmFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "days, d",
		Usage: "comma-separated weekdays (mon,tue,...); empty means every day",
	},
	cli.StringFlag{
		Name:  "label, l",
		Usage: "alarm label",
	},
	cli.BoolFlag{
		Name:  "no-tts",
		Usage: "do not speak the alarm aloud",
	},
}

var weekdayNames = map[string]focuslib.Weekday{
	"sun": focuslib.Sun,
	"mon": focuslib.Mon,
	"tue": focuslib.Tue,
	"wed": focuslib.Wed,
	"thu": focuslib.Thu,
	"fri": focuslib.Fri,
	"sat": focuslib.Sat,
}

func parseRepeatDays(s string) ([]focuslib.Weekday, error) {
	if s == "" {
		return nil, nil
	}
	var days []focuslib.Weekday
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		day, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		days = append(days, day)
	}
	return days, nil
}

func addAlarm(ctx *cli.Context) error {
	at := ctx.Args().First()
	if at == "" {
		return common.PrintErrWithCmdHelp(ctx, errors.New("no alarm time provided, want HH:MM"))
	}
	days, err := parseRepeatDays(ctx.String("days"))
	if err != nil {
		return common.PrintErrWithCmdHelp(ctx, err)
	}
	client, err := getClient(ctx, "alarm")
	if err != nil {
		return nil
	}
	defer client.Close()
	res, err := client.AddAlarm(&lcommon.AddAlarmParams{
		Time:       at,
		RepeatDays: days,
		Label:      ctx.String("label"),
		UseTTS:     !ctx.Bool("no-tts"),
	})
	if err != nil {
		common.PrintRuntimeErr(ctx, "alarm", "add_alarm", err)
		return nil
	}
	if res.Alarm != nil {
		fmt.Printf("Added alarm at %s (%s)\nId: %s\n", res.Alarm.Time, alarmDays(res.Alarm), res.Alarm.Id)
	}
	return nil
}

func listAlarms(ctx *cli.Context) error {
	client, err := getClient(ctx, "alarm")
	if err != nil {
		return nil
	}
	defer client.Close()
	res, err := client.ListAlarms()
	if err != nil {
		common.PrintRuntimeErr(ctx, "alarm", "list_alarms", err)
		return nil
	}
	if len(res.Alarms) == 0 {
		fmt.Println("No alarms.")
		return nil
	}
	for _, a := range res.Alarms {
		state := "off"
		if a.Enabled {
			state = "on "
		}
		label := a.Label
		if label == "" {
			label = "-"
		}
		fmt.Printf("[%s] %s  %-20s %s  %s\n", state, a.Time, label, alarmDays(a), a.Id)
	}
	return nil
}

func deleteAlarm(ctx *cli.Context) error {
	id := ctx.Args().First()
	if id == "" {
		return common.PrintErrWithCmdHelp(ctx, errors.New("no alarm id provided"))
	}
	client, err := getClient(ctx, "alarm")
	if err != nil {
		return nil
	}
	defer client.Close()
	res, err := client.DeleteAlarm(id)
	if err != nil {
		common.PrintRuntimeErr(ctx, "alarm", "delete_alarm", err)
		return nil
	}
	fmt.Printf("Deleted. %d alarm(s) left.\n", len(res.Alarms))
	return nil
}

func enableAlarm(ctx *cli.Context) error {
	return toggleAlarm(ctx, true)
}

func disableAlarm(ctx *cli.Context) error {
	return toggleAlarm(ctx, false)
}

func toggleAlarm(ctx *cli.Context, enabled bool) error {
	id := ctx.Args().First()
	if id == "" {
		return common.PrintErrWithCmdHelp(ctx, errors.New("no alarm id provided"))
	}
	client, err := getClient(ctx, "alarm")
	if err != nil {
		return nil
	}
	defer client.Close()
	if _, err := client.ToggleAlarm(id, enabled); err != nil {
		common.PrintRuntimeErr(ctx, "alarm", "toggle_alarm", err)
		return nil
	}
	if enabled {
		fmt.Println("Alarm enabled.")
	} else {
		fmt.Println("Alarm disabled.")
	}
	return nil
}

func alarmDays(a *focuslib.AlarmItem) string {
	if len(a.RepeatDays) == 0 {
		return "every day"
	}
	parts := make([]string, len(a.RepeatDays))
	for i, d := range a.RepeatDays {
		parts[i] = string(d)
	}
	return strings.Join(parts, ",")
}
