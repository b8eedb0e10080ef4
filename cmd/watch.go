package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli"
	"github.com/vbauerster/mpb/v8"

	"github.com/lofiroom/lofid/cmd/common"
	"github.com/lofiroom/lofid/pkg/roomcli"
)

const watchRefreshInterval = 250 * time.Millisecond

func watch(ctx *cli.Context) error {
	client, err := getClient(ctx, "watch")
	if err != nil {
		return nil
	}
	defer client.Close()

	win := roomcli.NewWindow(client)
	if err := win.Attach(); err != nil {
		common.PrintRuntimeErr(ctx, "watch", "attach", err)
		return nil
	}
	if err := win.SetVisible(true); err != nil {
		common.PrintRuntimeErr(ctx, "watch", "visibility", err)
		return nil
	}

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- client.Listen()
	}()

	sigCtx, cancel := setupShutdownHandler()
	defer cancel()

	p := mpb.New(mpb.WithWidth(48))
	var bar *mpb.Bar
	var barKey string

	ticker := time.NewTicker(watchRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sigCtx.Done():
			if bar != nil {
				bar.Abort(true)
			}
			p.Wait()
			// Best effort: the daemon drops visibility on disconnect anyway.
			_, _ = client.ReportVisibility(false)
			fmt.Println("\nDetached.")
			return nil
		case err := <-listenErr:
			if bar != nil {
				bar.Abort(true)
			}
			p.Wait()
			if err != nil {
				common.PrintRuntimeErr(ctx, "watch", "listen", err)
			}
			return nil
		case <-ticker.C:
			state := win.Timer()
			if state.Total <= 0 {
				continue
			}
			name := "Focus"
			if state.Current != nil {
				name = itemLabel(state.Current)
			}
			key := fmt.Sprintf("%s/%d/%s", name, state.Total, state.Status)
			if key != barKey {
				if bar != nil {
					bar.Abort(true)
				}
				label := fmt.Sprintf("%s [%s]", name, state.Status)
				bar = common.InitCountdownBar(p, label, int64(state.Total))
				barKey = key
			}
			elapsed := state.Total - state.Remaining
			if elapsed < 0 {
				elapsed = 0
			}
			bar.SetCurrent(int64(elapsed))
		}
	}
}
