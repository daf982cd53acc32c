package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/teewear/storefront/internal/config"
	"github.com/teewear/storefront/internal/constants"
	"github.com/teewear/storefront/internal/infra"
	"github.com/teewear/storefront/internal/log"
	"github.com/teewear/storefront/internal/repository"
	"github.com/teewear/storefront/internal/seed"
)

func runSeeder(c context.Context) {
	cfg, err := config.Load(c, constants.AppSeeder)
	if err != nil {
		panic(fmt.Errorf("failed loading config with error=%w", err))
	}

	logger := log.Get(filepath.Join("/var/log/", constants.AppSeeder+".log"), cfg.Application).
		With().
		Str(log.KeyAppName, constants.AppSeeder).
		Str(log.KeyTag, "main runSeeder").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing database").Logger()
	logger.Info().Msg("initializing database")
	c = logger.WithContext(c)
	pool, err := infra.NewDatabaseClient(c, cfg.Database)
	if err != nil {
		err = fmt.Errorf("failed initializing database with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("initialized database")
	defer pool.Close()

	logger = logger.With().Str(log.KeyProcess, "seeding products").Logger()
	logger.Info().Msg("seeding products")
	c = logger.WithContext(c)
	if err := seed.Products(c, repository.NewProductRepository(pool)); err != nil {
		err = fmt.Errorf("failed seeding products with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("seeded products")
}
