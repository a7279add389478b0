package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/advenue/foodadmin/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,name,email,username,password,status_id,provider,provider_id,email_verified_at,created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var (
		u          model.User
		provider   sql.NullString
		providerID sql.NullString
		verifiedAt sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Username, &u.PasswordHash, &u.StatusID,
		&provider, &providerID, &verifiedAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	u.Provider = provider.String
	u.ProviderID = providerID.String
	if verifiedAt.Valid {
		t := verifiedAt.Time
		u.EmailVerifiedAt = &t
	}
	return u, nil
}

// Create inserts an admin-created user and returns its ID. The
// username is stored as given (the admin form passes the email) and
// the password hash is expected to be an unusable random credential.
func (r *UserRepo) Create(ctx context.Context, name, email, username, passwordHash string, status model.StatusID) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, username, password, status_id) VALUES (?,?,?,?,?)",
		name, email, username, passwordHash, status)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// CreateSSO provisions an account on first SSO contact: active status,
// pre-verified email and the external provider recorded.
func (r *UserRepo) CreateSSO(ctx context.Context, name, email, username, passwordHash, provider, providerID string) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, username, password, status_id, provider, provider_id, email_verified_at) VALUES (?,?,?,?,?,?,?,?)",
		name, email, username, passwordHash, model.StatusActive, provider, providerID, time.Now().UTC())
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// Update changes the admin-editable fields (name, email, status).
func (r *UserRepo) Update(ctx context.Context, id uint64, name, email string, status model.StatusID) error {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, email=?, status_id=?, updated_at=NOW() WHERE id=?",
		name, email, status, id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Zero affected rows is ambiguous (identical values or missing
		// row); verify existence before reporting not found.
		if _, err := r.GetByID(ctx, id); err == sql.ErrNoRows {
			return ErrNotFound
		}
	}
	return nil
}

// UpdateStatus forces a user's status to target. All four transitions
// (activate, deactivate, trash, restore) route through here; any status
// may move to any other, there are no guarded edges.
func (r *UserRepo) UpdateStatus(ctx context.Context, id uint64, target model.StatusID) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET status_id=?, updated_at=NOW() WHERE id=?", target, id)
	return err
}

// EmailTaken reports whether email belongs to a user other than selfID.
// Pass selfID 0 on create.
func (r *UserRepo) EmailTaken(ctx context.Context, email string, selfID uint64) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var id uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM users WHERE email=? LIMIT 1", email).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return id != selfID, nil
}

// UserQuery defines filters and pagination for the admin user list.
type UserQuery struct {
	Search   string
	StatusID model.StatusID
	OrderBy  string
	OrderDir string
	Page     int
	PerPage  int
}

var userSortFields = map[string]bool{
	"id":         true,
	"name":       true,
	"email":      true,
	"username":   true,
	"status_id":  true,
	"created_at": true,
	"updated_at": true,
}

func buildUserWhere(q UserQuery) (string, []any) {
	where := []string{}
	args := []any{}
	if q.Search != "" {
		like := "%" + EscapeLike(q.Search) + "%"
		where = append(where, "(name LIKE ? OR email LIKE ? OR username LIKE ?)")
		args = append(args, like, like, like)
	}
	if q.StatusID != 0 {
		where = append(where, "status_id=?")
		args = append(args, q.StatusID)
	}
	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

// List returns one page of users matching the query plus the total
// matching count. Results include the joined status directory entry.
func (r *UserRepo) List(ctx context.Context, q UserQuery) ([]model.User, int64, error) {
	where, args := buildUserWhere(q)

	var total int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := orderClause(q.OrderBy, q.OrderDir, "name", userSortFields)
	offset := (q.Page - 1) * q.PerPage
	listArgs := append(append([]any{}, args...), q.PerPage, offset)

	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users"+where+order+" LIMIT ? OFFSET ?", listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var (
			u          model.User
			provider   sql.NullString
			providerID sql.NullString
			verifiedAt sql.NullTime
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Username, &u.PasswordHash, &u.StatusID,
			&provider, &providerID, &verifiedAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		u.Provider = provider.String
		u.ProviderID = providerID.String
		if verifiedAt.Valid {
			t := verifiedAt.Time
			u.EmailVerifiedAt = &t
		}
		if st, ok := model.StatusByID(u.StatusID); ok {
			u.Status = &st
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}
