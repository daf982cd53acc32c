package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	cartCmd "github.com/teewear/storefront/cart/cmd"
	catalogCmd "github.com/teewear/storefront/catalog/cmd"
	"github.com/teewear/storefront/internal/config"
	"github.com/teewear/storefront/internal/constants"
	"github.com/teewear/storefront/internal/log"
	userCmd "github.com/teewear/storefront/user/cmd"
)

func Start() {
	logger := log.Get("/var/log/"+constants.AppStorefront+".log", config.Application{}).
		With().
		Str(log.KeyAppName, constants.AppStorefront).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{Use: constants.AppStorefront}
	commands := []*cobra.Command{
		{
			Use:   "catalog",
			Short: "Run catalog service",
			Run: func(cmd *cobra.Command, args []string) {
				catalogCmd.RunCatalogService(cmd.Context())
			},
		},
		{
			Use:   "cart",
			Short: "Run cart service",
			Run: func(cmd *cobra.Command, args []string) {
				cartCmd.RunCartService(cmd.Context())
			},
		},
		{
			Use:   "user",
			Short: "Run user service",
			Run: func(cmd *cobra.Command, args []string) {
				userCmd.RunUserService(cmd.Context())
			},
		},
		{
			Use:   "seed",
			Short: "Seed the product catalog",
			Run: func(cmd *cobra.Command, args []string) {
				runSeeder(cmd.Context())
			},
		},
	}
	rootCmd.AddCommand(commands...)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
