package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/clinic-portal/internal/config"
	"github.com/jwalitptl/clinic-portal/internal/repository/postgres"
	"github.com/jwalitptl/clinic-portal/pkg/security"
)

// seedadmin inserts or updates an admin login. Admin accounts are only ever
// written through this tool; the portal itself has no admin write path.
func main() {
	username := flag.String("username", "", "admin username")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Error().Msg("both -username and -password are required")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	hash, err := hasher.Hash(*password)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	_, err = db.Exec(`
		INSERT INTO admins (username, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash
	`, *username, hash)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin")
	}

	log.Info().Str("username", *username).Msg("admin seeded")
}
