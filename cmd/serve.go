package cmd

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bgdnvk/campusbot/internal/answer"
	"github.com/bgdnvk/campusbot/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the /ask answering service",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cat, err := loadCatalog(ctx)
		if err != nil {
			log.WithError(err).Warn("catalog unavailable; answering from the generative model only")
		}

		srv := server.New(server.Config{
			Host:        viper.GetString("server.host"),
			Port:        viper.GetInt("server.port"),
			CORSOrigins: viper.GetStringSlice("server.cors_origins"),
			Debug:       viper.GetBool("debug"),
		}, answer.NewEngine(cat, newGenerator(ctx)))

		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("host", "", "listen host")
	serveCmd.Flags().Int("port", 0, "listen port")
	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}
