// Package postgres provides a PostgreSQL-backed implementation of the
// storage.Storage interface on top of a pgx connection pool.
//
// The schema lives in migrations/ and is applied with golang-migrate on
// every New, the same way the sqlite backend does it.
package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/aanand-mishra/student-manager/internal/storage"
	"github.com/aanand-mishra/student-manager/internal/types"
)

// uniqueViolation is the SQLSTATE for a UNIQUE constraint failure.
const uniqueViolation = "23505"

//go:embed migrations/*.sql
var migrations embed.FS

// Postgres is the concrete implementation of storage.Storage.
type Postgres struct {
	pool *pgxpool.Pool
}

// New connects to dsn, verifies the connection and brings the schema up
// to date.
func New(ctx context.Context, dsn string) (*Postgres, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse dsn: %w", err)
	}
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	if err := migrateUp(poolCfg); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: migrate: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// migrateUp applies every pending up migration over a dedicated
// database/sql connection, closed again once the migration is done.
func migrateUp(poolCfg *pgxpool.Config) error {
	db := stdlib.OpenDB(*poolCfg.ConnConfig)

	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		db.Close()
		return err
	}

	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		src.Close()
		db.Close()
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		src.Close()
		driver.Close()
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// CreateStudent inserts a new row and returns it with the generated id.
func (p *Postgres) CreateStudent(ctx context.Context, draft types.Draft) (types.Student, error) {
	student := types.Student{Name: draft.Name, Email: draft.Email, Gender: draft.Gender}

	err := p.pool.QueryRow(ctx,
		"INSERT INTO students (name, email, gender) VALUES ($1, $2, $3) RETURNING id",
		draft.Name, draft.Email, string(draft.Gender),
	).Scan(&student.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return types.Student{}, storage.ErrEmailTaken
		}
		return types.Student{}, fmt.Errorf("CreateStudent: %w", err)
	}

	return student, nil
}

// GetStudents returns all students ordered by id.
func (p *Postgres) GetStudents(ctx context.Context) ([]types.Student, error) {
	rows, err := p.pool.Query(ctx, "SELECT id, name, email, gender FROM students ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)
	for rows.Next() {
		var (
			student types.Student
			gender  string
		)
		if err := rows.Scan(&student.ID, &student.Name, &student.Email, &gender); err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		student.Gender = types.Gender(gender)
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// DeleteStudentByID removes a student row by primary key.
func (p *Postgres) DeleteStudentByID(ctx context.Context, id int64) error {
	tag, err := p.pool.Exec(ctx, "DELETE FROM students WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Close closes the pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
