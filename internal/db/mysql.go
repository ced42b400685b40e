package db

import (
	"crypto/tls"
	"fmt"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"userauth/internal/config"
)

// tlsConfigName is the name the relaxed TLS profile is registered under.
const tlsConfigName = "userauth-skip-verify"

// Options describe a MySQL connection.
type Options struct {
	Addr     string
	Database string
	User     string
	Password string
	// RequireTLS encrypts the connection without verifying the server certificate.
	RequireTLS bool
}

// OptionsFromConfig extracts connection options from application config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Addr:       cfg.MySQLAddr(),
		Database:   cfg.MySQLDatabase,
		User:       cfg.MySQLUser,
		Password:   cfg.MySQLPassword,
		RequireTLS: cfg.MySQLTLS,
	}
}

// DSNConfig builds the driver configuration for opts.
func DSNConfig(opts Options) (*gomysql.Config, error) {
	dsn := gomysql.NewConfig()
	dsn.Net = "tcp"
	dsn.Addr = opts.Addr
	dsn.DBName = opts.Database
	dsn.User = opts.User
	dsn.Passwd = opts.Password
	dsn.ParseTime = true
	dsn.Loc = time.UTC
	dsn.Params = map[string]string{"charset": "utf8mb4"}

	if opts.RequireTLS {
		// Encrypted, but the server certificate is not verified.
		if err := gomysql.RegisterTLSConfig(tlsConfigName, &tls.Config{InsecureSkipVerify: true}); err != nil {
			return nil, fmt.Errorf("register tls config: %w", err)
		}
		dsn.TLSConfig = tlsConfigName
	}
	return dsn, nil
}

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(opts Options) (*gorm.DB, error) {
	dsn, err := DSNConfig(opts)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(mysql.Open(dsn.FormatDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}
