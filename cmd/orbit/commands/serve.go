package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eburon/orbit/pkg/console"
	"github.com/eburon/orbit/pkg/history"
	"github.com/eburon/orbit/pkg/session"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local session console",
	Long: `Run the local web console for a session.

The console exposes the session state over HTTP and WebSocket on
127.0.0.1 so a browser surface can inspect and reconfigure the session:

  GET  /api/session        current configuration and turn log
  POST /api/config         change one setting
  GET  /api/history        archived turns
  POST /api/history/clear  wipe the archive
  POST /api/turns/clear    wipe the on-screen log
  GET  /ws                 state snapshots pushed on every change

System-prompt edits over /api/config require the elevated staff ID.

Examples:
  orbit serve --id SI1234
  orbit serve --id SI0000 --port 8787`,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := signIn()
		if err != nil {
			return err
		}

		settings, err := newSettings()
		if err != nil {
			return err
		}

		store, backend, err := openHistory()
		if err != nil {
			return err
		}
		defer backend.Close()

		if err := restoreUserSettings(cmd, store, user.ID, settings, user.SuperAdmin); err != nil {
			return err
		}

		log := session.NewLog()
		archiver := history.NewArchiver(store, user.ID)
		archiver.Attach(cmd.Context(), log)
		defer archiver.Wait()

		srv := console.NewServer(user, settings, log, archiver, servePort)
		fmt.Printf("console listening on http://%s\n", srv.Addr())
		return srv.ListenAndServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8787, "console port on 127.0.0.1")
	rootCmd.AddCommand(serveCmd)
}
