// Command seedvendor crea o actualiza un vendedor de demo.
// Uso: go run ./cmd/seedvendor [-username u] [-password p] [-role vendedor|supervisor] [-hash-only]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"routevendor/internal/config"
	"routevendor/internal/infra"
	"routevendor/internal/middleware"
	"routevendor/internal/model"
	"routevendor/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/clause"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	username := flag.String("username", "vendedor@routevendor.local", "username")
	password := flag.String("password", "1234", "password")
	name := flag.String("name", "Vendedor Demo", "display name")
	role := flag.String("role", middleware.RoleVendedor, "vendedor | supervisor")
	hashOnly := flag.Bool("hash-only", false, "print the bcrypt hash and exit")
	flag.Parse()

	hash, err := service.HashPassword(*password)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt error")
	}
	if *hashOnly {
		fmt.Println(hash)
		return
	}
	if *role != middleware.RoleVendedor && *role != middleware.RoleSupervisor {
		log.Fatal().Str("role", *role).Msg("unknown role")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect error")
	}

	email := *username
	vendor := model.Vendor{
		Username:     *username,
		Name:         *name,
		Email:        &email,
		PasswordHash: hash,
		Role:         *role,
		Active:       true,
	}
	err = db.WithContext(context.Background()).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "name", "email", "role", "active"}),
	}).Create(&vendor).Error
	if err != nil {
		log.Fatal().Err(err).Msg("insert error")
	}
	log.Info().Str("username", *username).Str("role", *role).Msg("vendor created/updated")
}
