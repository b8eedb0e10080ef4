package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli"

	"github.com/lofiroom/lofid/cmd/common"
	"github.com/lofiroom/lofid/pkg/focuslib"
)

var minutesFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "minutes, m",
		Usage: "number of minutes",
		Value: 5,
	},
}

func startTimer(ctx *cli.Context) error {
	client, err := getClient(ctx, "start")
	if err != nil {
		return nil
	}
	defer client.Close()
	res, err := client.StartTimer()
	if err != nil {
		common.PrintRuntimeErr(ctx, "start", "start_timer", err)
		return nil
	}
	printTimer(res.State)
	return nil
}

func pauseTimer(ctx *cli.Context) error {
	client, err := getClient(ctx, "pause")
	if err != nil {
		return nil
	}
	defer client.Close()
	res, err := client.PauseTimer()
	if err != nil {
		common.PrintRuntimeErr(ctx, "pause", "pause_timer", err)
		return nil
	}
	printTimer(res.State)
	return nil
}

func resetTimer(ctx *cli.Context) error {
	client, err := getClient(ctx, "reset")
	if err != nil {
		return nil
	}
	defer client.Close()
	res, err := client.ResetTimer()
	if err != nil {
		common.PrintRuntimeErr(ctx, "reset", "reset_timer", err)
		return nil
	}
	printTimer(res.State)
	return nil
}

func skipItem(ctx *cli.Context) error {
	client, err := getClient(ctx, "skip")
	if err != nil {
		return nil
	}
	defer client.Close()
	res, err := client.SkipItem()
	if err != nil {
		common.PrintRuntimeErr(ctx, "skip", "skip_item", err)
		return nil
	}
	printTimer(res.State)
	return nil
}

func extendTimer(ctx *cli.Context) error {
	minutes := ctx.Int("minutes")
	if minutes <= 0 {
		return common.PrintErrWithCmdHelp(ctx, errors.New("minutes must be positive"))
	}
	client, err := getClient(ctx, "extend")
	if err != nil {
		return nil
	}
	defer client.Close()
	res, err := client.ExtendTimer(minutes)
	if err != nil {
		common.PrintRuntimeErr(ctx, "extend", "extend_timer", err)
		return nil
	}
	printTimer(res.State)
	return nil
}

func setDuration(ctx *cli.Context) error {
	minutes := ctx.Int("minutes")
	if minutes <= 0 {
		return common.PrintErrWithCmdHelp(ctx, errors.New("minutes must be positive"))
	}
	client, err := getClient(ctx, "duration")
	if err != nil {
		return nil
	}
	defer client.Close()
	res, err := client.SetDuration(minutes)
	if err != nil {
		common.PrintRuntimeErr(ctx, "duration", "set_duration", err)
		return nil
	}
	printTimer(res.State)
	return nil
}

func showStatus(ctx *cli.Context) error {
	client, err := getClient(ctx, "status")
	if err != nil {
		return nil
	}
	defer client.Close()
	res, err := client.GetTimer()
	if err != nil {
		common.PrintRuntimeErr(ctx, "status", "get_timer", err)
		return nil
	}
	printTimer(res.State)
	return nil
}

func printTimer(state focuslib.TimerState) {
	fmt.Printf("Timer: %s  %s / %s\n",
		state.Status,
		focuslib.FormatClock(state.Remaining),
		focuslib.FormatClock(state.Total),
	)
	if state.Current != nil {
		fmt.Printf("Now:   %s\n", itemLabel(state.Current))
	}
	if state.Next != nil {
		fmt.Printf("Next:  %s (%d min)\n", itemLabel(state.Next), state.Next.DurationMinutes)
	}
}
