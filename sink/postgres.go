package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/bemasher/rtlwx/parse"
)

// DefaultTable receives packets unless configured otherwise.
const DefaultTable = "sdr_packets"

// Execer is the part of *pgxpool.Pool used by the PostgreSQL sink.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres archives packets, one row each, with the mapped fields stored
// as a jsonb object.
type Postgres struct {
	db     Execer
	table  string
	insert string
	close  func()
}

// NewPostgres prepares statements for table, which may be schema qualified.
func NewPostgres(db Execer, table string) (*Postgres, error) {
	if table == "" {
		table = DefaultTable
	}

	parts := strings.Split(table, ".")
	for _, p := range parts {
		if p == "" {
			return nil, errors.Errorf("invalid table name %q", table)
		}
	}

	s := &Postgres{db: db, table: pgx.Identifier(parts).Sanitize()}
	s.insert = fmt.Sprintf(`INSERT INTO %s (date_time, us_units, fields) VALUES ($1, $2, $3)`, s.table)
	return s, nil
}

// ConnectPostgres opens a pool, checks the connection and creates the table
// if it does not exist.
func ConnectPostgres(ctx context.Context, connString, table string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, errors.Wrap(err, "connect to postgres")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}

	s, err := NewPostgres(pool, table)
	if err != nil {
		pool.Close()
		return nil, err
	}
	s.close = pool.Close

	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the table.
func (s *Postgres) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	date_time timestamptz NOT NULL,
	us_units  smallint NOT NULL,
	fields    jsonb NOT NULL
)`, s.table))
	return errors.Wrapf(err, "create table %s", s.table)
}

func (s *Postgres) Send(ctx context.Context, pkt *parse.Packet) error {
	fields, err := json.Marshal(pkt.Fields)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, s.insert, time.Unix(pkt.DateTime, 0).UTC(), int16(pkt.Units), fields)
	return errors.Wrap(err, "insert packet")
}

func (s *Postgres) Close() error {
	if s.close != nil {
		s.close()
	}
	return nil
}
