package main

import (
	"inventra-backend/internal/config"
	"inventra-backend/internal/constants"
	"inventra-backend/internal/database"
	"inventra-backend/internal/models"
	"inventra-backend/internal/pkg/validation"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the first admin account so lifecycle and import endpoints have an
// actor to authenticate as. Reads SEED_EMAIL / SEED_PASSWORD / SEED_FULLNAME.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	email := viper.GetString("SEED_EMAIL")
	password := viper.GetString("SEED_PASSWORD")
	fullname := viper.GetString("SEED_FULLNAME")
	if fullname == "" {
		fullname = "Administrator"
	}
	if !validation.IsValidEmail(email) {
		log.Fatal().Str("email", email).Msg("SEED_EMAIL is not a valid email")
	}
	if !validation.IsValidPassword(password) {
		log.Fatal().Msg("SEED_PASSWORD must be 8+ chars with a letter, digit and special character")
	}
	if !validation.IsValidFullname(fullname) {
		log.Fatal().Msg("SEED_FULLNAME contains unsupported characters")
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database open failed")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Info().Str("email", email).Msg("admin already exists, nothing to do")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Fatal().Err(err).Msg("hashing password failed")
	}
	user := models.User{
		Fullname:     fullname,
		Email:        email,
		PasswordHash: string(hash),
		Role:         constants.Admin,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatal().Err(err).Msg("creating admin failed")
	}
	log.Info().Str("user_id", user.UserID.String()).Str("email", email).Msg("admin created")
}
