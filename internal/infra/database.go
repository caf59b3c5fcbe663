package infra

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/Vovarama1992/voci-api/internal/config"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// DB is the process-wide connection pool together with the SQL dialect of
// the server behind it. It is created once at startup and closed at shutdown.
type DB struct {
	*sql.DB
	Dialect Dialect
}

func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	var (
		pool    *sql.DB
		dialect Dialect
		err     error
	)

	switch cfg.Driver {
	case config.DriverPostgres:
		dialect = Postgres
		pool, err = openPostgres(cfg)
	case config.DriverMySQL, "":
		dialect = MySQL
		pool, err = sql.Open("mysql", mysqlDSN(cfg))
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.PingContext(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	return &DB{DB: pool, Dialect: dialect}, nil
}

func mysqlDSN(cfg config.DatabaseConfig) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Pass
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

func postgresURL(cfg config.DatabaseConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Pass),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	return u.String()
}

func openPostgres(cfg config.DatabaseConfig) (*sql.DB, error) {
	connCfg, err := pgx.ParseConfig(postgresURL(cfg))
	if err != nil {
		return nil, err
	}
	return stdlib.OpenDB(*connCfg), nil
}
