package cmd

import (
	"os"

	"github.com/urfave/cli"

	"github.com/lofiroom/lofid/cmd/common"
	"github.com/lofiroom/lofid/pkg/roomcli"
)

// daemonURIEnv points the CLI at a remote daemon instead of the local
// socket. When unset the local daemon is spawned on demand.
const daemonURIEnv = "LOFID_DAEMON_URI"

// getClient connects to the daemon, spawning it first when needed.
// On failure the error has already been printed; callers return nil.
func getClient(ctx *cli.Context, cmd string) (*roomcli.Client, error) {
	if uri := os.Getenv(daemonURIEnv); uri != "" {
		client, err := roomcli.NewClientFromURI(uri)
		if err != nil {
			common.PrintRuntimeErr(ctx, cmd, "connect", err)
			return nil, err
		}
		return client, nil
	}
	if err := roomcli.EnsureDaemon(); err != nil {
		common.PrintRuntimeErr(ctx, cmd, "ensure_daemon", err)
		return nil, err
	}
	client, err := roomcli.NewClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, cmd, "connect", err)
		return nil, err
	}
	return client, nil
}
