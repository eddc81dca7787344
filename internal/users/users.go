// Package users manages accounts provisioned from registry identity
// records. Accounts are keyed by NPI and created on first successful
// authentication.
package users

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/efoncier/survey-lab/internal/registry"
	"github.com/efoncier/survey-lab/pkg/database"
	"github.com/efoncier/survey-lab/pkg/query"
	"github.com/efoncier/survey-lab/pkg/repository"
)

// User is a provisioned account backed by a registry identity.
type User struct {
	ID         uuid.UUID `json:"id"`
	NPI        string    `json:"npi"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Sex        string    `json:"sex"`
	BirthDate  time.Time `json:"birth_date"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	Profession string    `json:"profession"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// System manages user accounts.
type System interface {
	// EnsureFromPerson creates the account for a registry identity, or
	// refreshes the stored identity fields when the account exists.
	EnsureFromPerson(ctx context.Context, person *registry.Person) (*User, error)

	// Find returns the user with the given id.
	Find(ctx context.Context, id uuid.UUID) (*User, error)

	// Exists reports whether a user with the given id exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

var projection = query.NewProjectionMap("public", "users", "u").
	Project("id", "Id").
	Project("npi", "NPI").
	Project("first_name", "FirstName").
	Project("last_name", "LastName").
	Project("sex", "Sex").
	Project("birth_date", "BirthDate").
	Project("email", "Email").
	Project("phone", "Phone").
	Project("address", "Address").
	Project("profession", "Profession").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

func scanUser(s repository.Scanner) (*User, error) {
	var u User
	err := s.Scan(
		&u.ID,
		&u.NPI,
		&u.FirstName,
		&u.LastName,
		&u.Sex,
		&u.BirthDate,
		&u.Email,
		&u.Phone,
		&u.Address,
		&u.Profession,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

type repo struct {
	db     database.System
	logger *slog.Logger
}

// NewSystem creates a sql-backed user system.
func NewSystem(db database.System, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "users"),
	}
}

const ensureQuery = `
INSERT INTO users (id, npi, first_name, last_name, sex, birth_date, email, phone, address, profession)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (npi) DO UPDATE SET
	first_name = EXCLUDED.first_name,
	last_name = EXCLUDED.last_name,
	sex = EXCLUDED.sex,
	birth_date = EXCLUDED.birth_date,
	email = EXCLUDED.email,
	phone = EXCLUDED.phone,
	address = EXCLUDED.address,
	profession = EXCLUDED.profession,
	updated_at = now()
RETURNING id, npi, first_name, last_name, sex, birth_date, email, phone, address, profession, created_at, updated_at`

func (r *repo) EnsureFromPerson(ctx context.Context, person *registry.Person) (*User, error) {
	args := []any{
		uuid.New(),
		person.NPI,
		person.FirstName,
		person.LastName,
		person.Sex,
		person.BirthDate,
		person.Email,
		person.Phone,
		person.Address,
		person.Profession,
	}

	user, err := repository.QueryOne(ctx, r.db.Connection(), ensureQuery, args, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Debug("user ensured", "id", user.ID, "npi", user.NPI)
	return user, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*User, error) {
	sql, args := query.NewBuilder(projection).BuildSingle("Id", id)

	user, err := repository.QueryOne(ctx, r.db.Connection(), sql, args, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return user, nil
}

func (r *repo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.Connection().
		QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)", id).
		Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
