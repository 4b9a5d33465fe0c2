package main

import (
	"context"
	"errors"
	"log"
	"os"

	"gorm.io/gorm"

	"bjustcoin/internal/auth"
	"bjustcoin/internal/config"
	"bjustcoin/internal/db"
	"bjustcoin/internal/model"
	"bjustcoin/internal/repository"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Wallet{},
		&model.WhitelistEntry{},
		&model.Application{},
		&model.Holder{},
		&model.AuthRequest{},
		&model.LogEntry{},
		&model.VerificationToken{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	holderRepo := repository.NewHolderRepository(gormDB)

	if err := seedSuperuser(ctx, userRepo, cfg.PasswordPepper); err != nil {
		log.Fatalf("Failed to seed superuser: %v", err)
	}

	if err := seedHolders(ctx, holderRepo); err != nil {
		log.Fatalf("Failed to seed holders: %v", err)
	}

	log.Println("Seed completed successfully!")
}

// seedSuperuser provisions the initial superuser account once. Reruns are
// no-ops while any superuser exists.
func seedSuperuser(ctx context.Context, repo repository.UserRepository, pepper string) error {
	exists, err := repo.SuperuserExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		log.Println("Superuser already present, skipping")
		return nil
	}

	email := envOr("SEED_SUPERUSER_EMAIL", "admin@bjustcoin.com")
	password := envOr("SEED_SUPERUSER_PASSWORD", "change-me-now")

	hasher := auth.NewHasher(pepper)
	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}
	session, err := auth.NewToken()
	if err != nil {
		return err
	}

	user := &model.User{
		FirstName:    "Platform",
		LastName:     "Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleSuperuser,
		SessionToken: session,
	}
	if err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("Account %s already exists, skipping", email)
			return nil
		}
		return err
	}

	log.Printf("Superuser created: %s", email)
	return nil
}

// seedHolders loads a small demo registry. UpsertByAddress keys on the
// wallet address, so reruns refresh rather than duplicate.
func seedHolders(ctx context.Context, repo repository.HolderRepository) error {
	holders := []model.Holder{
		{Address: "0x3f5ce5fbfe3e9af3971dd833d26ba9b5c936f0be", Count: 1, Stage: "Seed", Tokens: "250000"},
		{Address: "0x53d284357ec70ce289d6d64134dfac8e511c8a3d", Count: 2, Stage: "Private Sale", Tokens: "120000"},
		{Address: "0xfe9e8709d3215310075d67e3ed32a380ccf451c8", Count: 1, Stage: "Public Sale", Tokens: "35000"},
	}
	if err := repo.UpsertByAddress(ctx, holders); err != nil {
		return err
	}
	log.Printf("Seeded %d holders", len(holders))
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
