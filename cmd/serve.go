package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/verible/verible-cli/internal/server"
	"github.com/verible/verible-cli/pkg/history"
)

// serveCmd starts the local dashboard.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local seller dashboard",
	Long: `Serves a small web dashboard over the local history database, with a
refresh endpoint that fetches a fresh score from the backend. Set
dashboard.username and dashboard.password in the config to require basic auth.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		listenAddr, _ := cmd.Flags().GetString("listen")
		dbPath, _ := cmd.Flags().GetString("dbpath")

		db, err := history.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		srv := server.New(db, newAPIClient(),
			viper.GetString("dashboard.username"),
			viper.GetString("dashboard.password"))
		return srv.Start(listenAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "", "127.0.0.1:7117", "HTTP listen address")
	serveCmd.Flags().StringP("dbpath", "", "verible.sqlite", "Path to the history database")
}
