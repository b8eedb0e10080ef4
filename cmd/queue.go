package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli"

	"github.com/lofiroom/lofid/cmd/common"
	lcommon "github.com/lofiroom/lofid/common"
	"github.com/lofiroom/lofid/pkg/focuslib"
)

var addFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "minutes, m",
		Usage: "session length in minutes",
		Value: 25,
	},
	cli.BoolFlag{
		Name:  "no-break",
		Usage: "do not auto-insert a break after the session",
	},
	cli.StringFlag{
		Name:  "emoji",
		Usage: "display glyph for the session",
	},
}

var breakFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "minutes, m",
		Usage: "break length in minutes",
		Value: 5,
	},
	cli.StringFlag{
		Name:  "after",
		Usage: "splice the break after this item id",
	},
}

var clearFlags = []cli.Flag{
	cli.BoolFlag{
		Name:  "all",
		Usage: "empty the whole queue and reset the timer",
	},
}

func addSession(ctx *cli.Context) error {
	title := ctx.Args().First()
	if title == "" {
		return common.PrintErrWithCmdHelp(ctx, errors.New("no session title provided"))
	}
	client, err := getClient(ctx, "add")
	if err != nil {
		return nil
	}
	defer client.Close()
	res, err := client.AddSession(title, ctx.Int("minutes"), !ctx.Bool("no-break"), ctx.String("emoji"))
	if err != nil {
		common.PrintRuntimeErr(ctx, "add", "add_session", err)
		return nil
	}
	printItemAdded(res.Item)
	return nil
}

func addPreset(ctx *cli.Context) error {
	id := ctx.Args().First()
	if id == "" {
		fmt.Println("Available presets:")
		for _, p := range focuslib.DefaultPresets {
			fmt.Printf("  %-10s %s %s (%d min)\n", p.Id, p.Emoji, p.Name, p.FocusMinutes)
		}
		return nil
	}
	client, err := getClient(ctx, "preset")
	if err != nil {
		return nil
	}
	defer client.Close()
	res, err := client.AddPreset(id)
	if err != nil {
		common.PrintRuntimeErr(ctx, "preset", "add_preset", err)
		return nil
	}
	printItemAdded(res.Item)
	return nil
}

func addBreak(ctx *cli.Context) error {
	client, err := getClient(ctx, "break")
	if err != nil {
		return nil
	}
	defer client.Close()
	res, err := client.AddBreak(ctx.Int("minutes"), ctx.String("after"))
	if err != nil {
		common.PrintRuntimeErr(ctx, "break", "add_break", err)
		return nil
	}
	printItemAdded(res.Item)
	return nil
}

func showQueue(ctx *cli.Context) error {
	client, err := getClient(ctx, "queue")
	if err != nil {
		return nil
	}
	defer client.Close()
	res, err := client.GetQueue()
	if err != nil {
		common.PrintRuntimeErr(ctx, "queue", "get_queue", err)
		return nil
	}
	printQueue(res)
	return nil
}

func removeItem(ctx *cli.Context) error {
	id := ctx.Args().First()
	if id == "" {
		return common.PrintErrWithCmdHelp(ctx, errors.New("no item id provided"))
	}
	client, err := getClient(ctx, "remove")
	if err != nil {
		return nil
	}
	defer client.Close()
	res, err := client.RemoveItem(id)
	if err != nil {
		common.PrintRuntimeErr(ctx, "remove", "remove_item", err)
		return nil
	}
	fmt.Printf("Removed. %d item(s) left in the queue.\n", len(res.Items))
	return nil
}

func clearQueue(ctx *cli.Context) error {
	client, err := getClient(ctx, "clear")
	if err != nil {
		return nil
	}
	defer client.Close()
	var res *lcommon.QueueResponse
	if ctx.Bool("all") {
		res, err = client.ClearAll()
	} else {
		res, err = client.ClearCompleted()
	}
	if err != nil {
		common.PrintRuntimeErr(ctx, "clear", "clear_queue", err)
		return nil
	}
	fmt.Printf("Queue cleared. %d item(s) left.\n", len(res.Items))
	return nil
}

func printItemAdded(item *focuslib.ScheduleItem) {
	if item == nil {
		return
	}
	fmt.Printf("Added %s (%d min)\nId: %s\n", itemLabel(item), item.DurationMinutes, item.Id)
}

func itemLabel(item *focuslib.ScheduleItem) string {
	if item.Emoji != "" {
		return item.Emoji + " " + item.Title
	}
	return item.Title
}

func printQueue(res *lcommon.QueueResponse) {
	if len(res.Items) == 0 {
		fmt.Println("The schedule queue is empty.")
		return
	}
	fmt.Println("Schedule queue:")
	for i, item := range res.Items {
		marker := " "
		if item.Status == focuslib.StatusActive {
			marker = ">"
		}
		fmt.Printf("%s %2d. [%-9s] %-30s %3d min  %s\n",
			marker, i+1, item.Status, itemLabel(item), item.DurationMinutes, item.Id)
	}
	s := res.Stats
	fmt.Printf("\n%d item(s), %d pending, %d completed. Focus: %d/%d min done.\n",
		s.TotalItems, s.PendingItems, s.CompletedItems,
		s.CompletedFocusMinutes, s.TotalFocusMinutes)
}
