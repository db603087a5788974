package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	dataSourceName = "host=%s user=%s password=%s dbname=%s %s"
)

type (
	dbSettings struct {
		host,
		user,
		password,
		name,
		param string
	}
)

func GetDbWriteOnly(ctx context.Context) (*pgxpool.Pool, error) {
	return createDbConnection(ctx, lookupDbSettings("DB_WRITE"))
}

// GetDbReadOnly falls back to the write settings when no replica is configured.
func GetDbReadOnly(ctx context.Context) (*pgxpool.Pool, error) {
	settings := lookupDbSettings("DB_READ")
	if settings.host == "" {
		settings = lookupDbSettings("DB_WRITE")
	}
	return createDbConnection(ctx, settings)
}

func lookupDbSettings(prefix string) dbSettings {
	return dbSettings{
		host:     os.Getenv(prefix + "_HOST"),
		user:     os.Getenv(prefix + "_USERNAME"),
		password: os.Getenv(prefix + "_PASSWORD"),
		name:     os.Getenv(prefix + "_NAME"),
		param:    os.Getenv(prefix + "_PARAM"),
	}
}

func createDbConnection(ctx context.Context, settings dbSettings) (*pgxpool.Pool, error) {
	if settings.host == "" {
		return nil, errors.New("db: host is required")
	}
	descriptor := fmt.Sprintf(dataSourceName, settings.host, settings.user, settings.password, settings.name, settings.param)
	envMaxConns, ok := os.LookupEnv("DB_MAX_CONNECTIONS")
	if !ok || envMaxConns == "" {
		return nil, errors.New("db: env DB_MAX_CONNECTIONS is required")
	}
	maxConns, err := strconv.Atoi(envMaxConns)
	if err != nil {
		return nil, err
	}
	if maxConns < 1 {
		return nil, errors.New("db: env DB_MAX_CONNECTIONS requires a positive integer")
	}
	poolConfig, err := pgxpool.ParseConfig(descriptor)
	if err != nil {
		return nil, err
	}
	poolConfig.MaxConns = int32(maxConns)
	if envIdle, ok := os.LookupEnv("DB_MAX_CONN_IDLE_TIME"); ok && envIdle != "" {
		idle, err := time.ParseDuration(envIdle)
		if err != nil {
			return nil, fmt.Errorf("db: env DB_MAX_CONN_IDLE_TIME: %w", err)
		}
		poolConfig.MaxConnIdleTime = idle
	}
	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
