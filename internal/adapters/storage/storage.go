package storage

import (
	"context"

	"petvax-hub/internal/adapters/storage/memory"
	"petvax-hub/internal/adapters/storage/mongo"
	"petvax-hub/internal/adapters/storage/postgres"
	"petvax-hub/internal/domain/pets"
	"petvax-hub/internal/domain/users"
	"petvax-hub/internal/domain/vaccinations"
	"petvax-hub/internal/platform/config"
	"petvax-hub/internal/platform/logger"

	"github.com/pkg/errors"
)

// Repositories agrupa los stores de todos los dominios.
type Repositories struct {
	Pets         pets.Repository
	Vaccinations vaccinations.Repository
	Users        users.Repository
}

// Memory devuelve stores en memoria (dev y tests).
func Memory() Repositories {
	return Repositories{
		Pets:         memory.NewPetRepo(),
		Vaccinations: memory.NewVaccinationRepo(),
		Users:        memory.NewUserRepo(),
	}
}

// Open abre el driver configurado. close libera conexiones; nunca es nil.
func Open(ctx context.Context, cfg config.Storage, log logger.Logger) (Repositories, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	switch cfg.Driver {
	case "", "memory":
		log.Warn("using in-memory storage, data is lost on restart", nil)
		return Memory(), noop, nil

	case "postgres":
		db, err := postgres.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return Repositories{}, noop, err
		}
		if cfg.Postgres.AutoMigrate {
			if err := postgres.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return Repositories{}, noop, err
			}
			log.Info("postgres schema applied", nil)
		}
		log.Info("storage ready", map[string]any{"driver": "postgres"})
		return Repositories{
				Pets:         postgres.NewPetsRepo(db),
				Vaccinations: postgres.NewVaccinationsRepo(db),
				Users:        postgres.NewUsersRepo(db),
			}, func(context.Context) error {
				return db.Close()
			}, nil

	case "mongo":
		client, db, err := mongo.Open(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return Repositories{}, noop, err
		}
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return Repositories{}, noop, err
		}
		log.Info("storage ready", map[string]any{"driver": "mongo", "database": cfg.Mongo.Database})
		return Repositories{
			Pets:         mongo.NewPetsRepo(db),
			Vaccinations: mongo.NewVaccinationsRepo(db),
			Users:        mongo.NewUsersRepo(db),
		}, client.Disconnect, nil
	}

	return Repositories{}, noop, errors.Errorf("unknown storage driver %q", cfg.Driver)
}
