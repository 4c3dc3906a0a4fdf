package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"school-admin/models"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

// PostgresStore implements StudentStore on a pgx connection pool.
// The students table carries the real invariants: UNIQUE on roll_no and a
// CHECK constraint on status, so concurrent writers are serialized by the
// engine rather than by application code.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const studentColumns = "id, roll_no, name, class_name, parent_contact, status, created_at, updated_at"

func scanStudent(row pgx.Row) (models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID,
		&s.RollNo,
		&s.Name,
		&s.Class,
		&s.ParentContact,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

func (p *PostgresStore) List(ctx context.Context) ([]models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY roll_no ASC`
	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	return students, nil
}

func (p *PostgresStore) Get(ctx context.Context, id string) (models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	s, err := scanStudent(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Student{}, ErrNotFound
		}
		return models.Student{}, fmt.Errorf("get student: %w", err)
	}
	return s, nil
}

func (p *PostgresStore) Create(ctx context.Context, req models.CreateStudentRequest) (models.Student, error) {
	contact, status, err := validateCreate(req)
	if err != nil {
		return models.Student{}, err
	}

	query := `
		INSERT INTO students (id, roll_no, name, class_name, parent_contact, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + studentColumns
	s, err := scanStudent(p.pool.QueryRow(ctx, query,
		uuid.New().String(),
		strings.TrimSpace(req.RollNo),
		strings.TrimSpace(req.Name),
		strings.TrimSpace(req.Class),
		contact,
		status,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.Student{}, ErrDuplicateRollNo
		}
		return models.Student{}, fmt.Errorf("create student: %w", err)
	}

	return s, nil
}

func (p *PostgresStore) Update(ctx context.Context, id string, req models.UpdateStudentRequest) (models.Student, error) {
	contact, err := validateUpdate(req)
	if err != nil {
		return models.Student{}, err
	}

	// NULLIF turns unsupplied (empty) fields into NULL so COALESCE keeps
	// the stored value. roll_no is deliberately absent from the SET list.
	query := `
		UPDATE students
		SET name = COALESCE(NULLIF($1, ''), name),
		    class_name = COALESCE(NULLIF($2, ''), class_name),
		    parent_contact = COALESCE(NULLIF($3, ''), parent_contact),
		    status = COALESCE(NULLIF($4, ''), status),
		    updated_at = NOW()
		WHERE id = $5
		RETURNING ` + studentColumns
	s, err := scanStudent(p.pool.QueryRow(ctx, query,
		strings.TrimSpace(req.Name),
		strings.TrimSpace(req.Class),
		contact,
		req.Status,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Student{}, ErrNotFound
		}
		return models.Student{}, fmt.Errorf("update student: %w", err)
	}

	return s, nil
}

func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	result, err := p.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
