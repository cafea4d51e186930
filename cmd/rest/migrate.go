package main

import (
	"context"
	"studyshare-be/pkg/database"
)

func runMigrate(ctx context.Context) error {
	db, err := database.ConnectDB(ctx, cfg.DBConnectionString)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	log.Info("migrations applied")
	return nil
}
