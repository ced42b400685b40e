package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"userauth/internal/auth"
	"userauth/internal/config"
	"userauth/internal/db"
	apperrors "userauth/internal/errors"
	"userauth/internal/logging"
	"userauth/internal/model"
	"userauth/internal/repository"
	"userauth/internal/service"
)

// SeedUser is one entry of the seed file.
type SeedUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// seedResult counts the outcome of a seed run.
type seedResult struct {
	Created  int
	Existing int
	Invalid  int
}

func main() {
	file := flag.String("file", "users.json", "path to a JSON array of {name, email, password}")
	flag.Parse()

	logger := logging.New("info")

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}

	users, err := readSeedFile(*file)
	if err != nil {
		logger.WithError(err).Fatal("read seed file")
	}
	logger.WithField("count", len(users)).Info("seed file loaded")

	gormDB, err := db.NewMySQL(db.OptionsFromConfig(cfg))
	if err != nil {
		logger.WithError(err).Fatal("database init")
	}
	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		logger.WithError(err).Fatal("auto-migrate")
	}

	authService := service.NewAuthService(repository.NewUserRepository(gormDB), auth.NewJWTService(cfg.JWTSecret))

	res, err := seedUsers(context.Background(), authService, users, logger)
	if err != nil {
		logger.WithError(err).Fatal("seed users")
	}
	logger.WithFields(logrus.Fields{
		"created":  res.Created,
		"existing": res.Existing,
		"invalid":  res.Invalid,
	}).Info("seed completed")
}

func readSeedFile(path string) ([]SeedUser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return decodeSeedUsers(f)
}

func decodeSeedUsers(r io.Reader) ([]SeedUser, error) {
	var users []SeedUser
	if err := json.NewDecoder(r).Decode(&users); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	return users, nil
}

// seedUsers registers each user through the normal registration path, so
// passwords are hashed exactly as for API sign-ups. Already registered emails
// and incomplete entries are skipped; any other failure aborts the run.
func seedUsers(ctx context.Context, svc service.AuthService, users []SeedUser, logger *logrus.Logger) (seedResult, error) {
	var res seedResult
	for _, u := range users {
		_, err := svc.Register(ctx, u.Name, u.Email, u.Password)
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, apperrors.ErrDuplicateEmail):
			logger.WithField("email", u.Email).Info("user already registered, skipping")
			res.Existing++
		case errors.Is(err, apperrors.ErrValidation):
			logger.WithField("email", u.Email).Warn("incomplete seed entry, skipping")
			res.Invalid++
		default:
			return res, fmt.Errorf("register %s: %w", u.Email, err)
		}
	}
	return res, nil
}
