package db

import (
	"context"

	"github.com/google/uuid"
)

const createUser = `
INSERT INTO users (id, full_name, email, hashed_password, google_account_id, role)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, full_name, email, hashed_password, google_account_id, role, created_at
`

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser,
		uuid.NewString(),
		arg.FullName,
		arg.Email,
		arg.HashedPassword,
		arg.GoogleAccountID,
		arg.Role,
	)

	var user User
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.HashedPassword,
		&user.GoogleAccountID,
		&user.Role,
		&user.CreatedAt,
	)
	return user, err
}

const getUserByID = `
SELECT id, full_name, email, hashed_password, google_account_id, role, created_at
FROM users
WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)

	var user User
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.HashedPassword,
		&user.GoogleAccountID,
		&user.Role,
		&user.CreatedAt,
	)
	return user, err
}

const getUserByEmail = `
SELECT id, full_name, email, hashed_password, google_account_id, role, created_at
FROM users
WHERE email = $1
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)

	var user User
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.HashedPassword,
		&user.GoogleAccountID,
		&user.Role,
		&user.CreatedAt,
	)
	return user, err
}
