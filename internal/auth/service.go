package auth

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleSuperadmin    = "superadmin"
	RoleAdministrator = "administrator"
	RoleCmd           = "cmd"
	RoleUser          = "user"
)

func ValidRole(role string) bool {
	switch role {
	case RoleSuperadmin, RoleAdministrator, RoleCmd, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
)

// Service owns the users table and the token scheme. The default scheme is
// the legacy opaque format "token_<userId>_<epochMillis>", verified by user
// lookup only; setting signed=true switches issuance to HS256 JWTs while
// legacy tokens stay verifiable.
type Service struct {
	db     *sql.DB
	driver string
	signed bool
	hmac   []byte
}

func NewService(db *sql.DB, driver string, signed bool, secret string) *Service {
	return &Service{db: db, driver: driver, signed: signed, hmac: []byte(secret)}
}

// EnsureDefaults seeds the stock accounts when the users table is empty.
// Seed hashes are SHA-256 like the data this replaces; anything created or
// updated afterwards is stored as bcrypt.
func (s *Service) EnsureDefaults(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return nil
	}
	seeds := []struct{ username, password, role, name string }{
		{"superadmin", "superadmin123", RoleSuperadmin, "Super Administrator"},
		{"administrator", "admin123", RoleAdministrator, "Administrator"},
		{"cmd", "cmd123", RoleCmd, "CMD"},
		{"user", "user123", RoleUser, "Użytkownik"},
	}
	for _, u := range seeds {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO users (username, password_hash, role, name) VALUES ($1,$2,$3,$4)`,
			u.username, sha256Hex(u.password), u.role, u.name); err != nil {
			return fmt.Errorf("seed user %s: %w", u.username, err)
		}
	}
	return nil
}

func (s *Service) Login(ctx context.Context, username, password string) (User, string, error) {
	var u User
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role, name FROM users WHERE username=$1`,
		username).Scan(&u.ID, &u.Username, &hash, &u.Role, &u.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return User{}, "", fmt.Errorf("lookup user: %w", err)
	}
	if !verifyPassword(hash, password) {
		return User{}, "", ErrInvalidCredentials
	}
	tok, err := s.issueToken(u)
	if err != nil {
		return User{}, "", err
	}
	return u, tok, nil
}

// Verify resolves a token to its user. The DB row is authoritative for the
// role, also for signed tokens.
func (s *Service) Verify(ctx context.Context, token string) (User, error) {
	switch {
	case strings.HasPrefix(token, "token_"):
		parts := strings.Split(token, "_")
		if len(parts) != 3 {
			return User{}, ErrInvalidToken
		}
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return User{}, ErrInvalidToken
		}
		u, err := s.GetUser(ctx, id)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return User{}, ErrInvalidToken
			}
			return User{}, err
		}
		return u, nil
	case s.signed:
		claims := &tokenClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			return s.hmac, nil
		})
		if err != nil || !parsed.Valid {
			return User{}, ErrInvalidToken
		}
		id, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			return User{}, ErrInvalidToken
		}
		u, err := s.GetUser(ctx, id)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return User{}, ErrInvalidToken
			}
			return User{}, err
		}
		return u, nil
	default:
		return User{}, ErrInvalidToken
	}
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *Service) issueToken(u User) (string, error) {
	if !s.signed {
		return fmt.Sprintf("token_%d_%d", u.ID, time.Now().UnixMilli()), nil
	}
	now := time.Now()
	claims := &tokenClaims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			Issuer:    "examtrack",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(8 * time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.hmac)
}

func (s *Service) GetUser(ctx context.Context, id int64) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, role, name FROM users WHERE id=$1`, id).
		Scan(&u.ID, &u.Username, &u.Role, &u.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, role, name FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	out := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Role, &u.Name); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Service) CreateUser(ctx context.Context, username, password, role, name string) (User, error) {
	if !ValidRole(role) {
		return User{}, fmt.Errorf("invalid role: %s", role)
	}
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username=$1`, username).Scan(&exists)
	if err == nil {
		return User{}, ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("check username: %w", err)
	}
	hash, err := hashPassword(password)
	if err != nil {
		return User{}, err
	}

	const insert = `INSERT INTO users (username, password_hash, role, name) VALUES ($1,$2,$3,$4)`
	var id int64
	if s.driver == "postgres" {
		if err := s.db.QueryRowContext(ctx, insert+" RETURNING id", username, hash, role, name).Scan(&id); err != nil {
			return User{}, fmt.Errorf("insert user: %w", err)
		}
	} else {
		res, err := s.db.ExecContext(ctx, insert, username, hash, role, name)
		if err != nil {
			return User{}, fmt.Errorf("insert user: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return User{}, err
		}
	}
	return User{ID: id, Username: username, Role: role, Name: name}, nil
}

// UserUpdate fields left empty keep their current value.
type UserUpdate struct {
	Username string
	Password string
	Role     string
	Name     string
}

func (s *Service) UpdateUser(ctx context.Context, id int64, up UserUpdate) (User, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return User{}, err
	}
	if up.Username != "" && up.Username != u.Username {
		var exists int
		err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username=$1`, up.Username).Scan(&exists)
		if err == nil {
			return User{}, ErrUsernameTaken
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return User{}, fmt.Errorf("check username: %w", err)
		}
		u.Username = up.Username
	}
	if up.Role != "" {
		if !ValidRole(up.Role) {
			return User{}, fmt.Errorf("invalid role: %s", up.Role)
		}
		u.Role = up.Role
	}
	if up.Name != "" {
		u.Name = up.Name
	}
	if up.Password != "" {
		hash, err := hashPassword(up.Password)
		if err != nil {
			return User{}, err
		}
		if _, err := s.db.ExecContext(ctx,
			`UPDATE users SET username=$1, role=$2, name=$3, password_hash=$4 WHERE id=$5`,
			u.Username, u.Role, u.Name, hash, id); err != nil {
			return User{}, fmt.Errorf("update user %d: %w", id, err)
		}
		return u, nil
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE users SET username=$1, role=$2, name=$3 WHERE id=$4`,
		u.Username, u.Role, u.Name, id); err != nil {
		return User{}, fmt.Errorf("update user %d: %w", id, err)
	}
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *Service) ChangePassword(ctx context.Context, id int64, current, next string) error {
	var hash string
	err := s.db.QueryRowContext(ctx, `SELECT password_hash FROM users WHERE id=$1`, id).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup user %d: %w", id, err)
	}
	if !verifyPassword(hash, current) {
		return ErrInvalidCredentials
	}
	newHash, err := hashPassword(next)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE users SET password_hash=$1 WHERE id=$2`, newHash, id); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// verifyPassword accepts both hash formats: bcrypt for accounts touched by
// this service, bare SHA-256 hex for rows imported from the legacy store.
func verifyPassword(hash, password string) bool {
	if strings.HasPrefix(hash, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	return hash == sha256Hex(password)
}

func hashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
