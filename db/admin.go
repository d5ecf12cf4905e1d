//go:generate mockgen -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE
package db

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/mural-studio/backend/domain"
)

const adminColumns = "id, username, password, secret_question, secret_answer, created"

type AdminRepository interface {
	Register(ctx context.Context, admin domain.NewAdmin) (domain.Admin, error)
	Get(ctx context.Context, username string) (domain.Admin, error)
	// Authenticate fails with domain.ErrUnauthorized for an unknown username
	// as well as for a wrong password.
	Authenticate(ctx context.Context, username, password string) (domain.Admin, error)
	GetSecretQuestion(ctx context.Context, username string) (string, error)
	ResetPassword(ctx context.Context, username, secretAnswer, newPassword string) error
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
}

type AdminDBRepository struct {
	*sql.DB
	cost    int
	compare func(hash, secret []byte) error

	// decoy is compared against when the username is unknown so a miss costs
	// as much as a wrong password.
	decoyOnce sync.Once
	decoy     []byte
	decoyErr  error
}

// NewAdminRepository hashes secrets with the given bcrypt cost.
func NewAdminRepository(db *sql.DB, cost int) AdminRepository {
	return &AdminDBRepository{DB: db, cost: cost, compare: bcrypt.CompareHashAndPassword}
}

func (r *AdminDBRepository) Register(ctx context.Context, admin domain.NewAdmin) (domain.Admin, error) {
	if admin.Username == "" || admin.Password == "" || admin.SecretQuestion == "" || admin.SecretAnswer == "" {
		return domain.Admin{}, errors.Wrap(domain.ErrBadRequest, "username, password, secret question and answer are required")
	}
	password, err := r.hash(admin.Password)
	if err != nil {
		return domain.Admin{}, err
	}
	answer, err := r.hash(normalizeAnswer(admin.SecretAnswer))
	if err != nil {
		return domain.Admin{}, err
	}

	if _, err := r.ExecContext(ctx,
		"INSERT INTO admins (username, password, secret_question, secret_answer) VALUES (?, ?, ?, ?)",
		admin.Username, password, admin.SecretQuestion, answer); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.Admin{}, errors.Wrapf(domain.ErrBadRequest, "admin %q already exists", admin.Username)
		}
		return domain.Admin{}, errors.Wrap(err, "insert admin")
	}
	return r.Get(ctx, admin.Username)
}

func (r *AdminDBRepository) Get(ctx context.Context, username string) (domain.Admin, error) {
	row := r.QueryRowContext(ctx, "SELECT "+adminColumns+" FROM admins WHERE username = ?", username)

	var a domain.Admin
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.SecretQuestion, &a.SecretAnswerHash, &a.Created)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Admin{}, errors.Wrapf(domain.ErrNotFound, "admin %q", username)
	}
	if err != nil {
		return domain.Admin{}, errors.Wrapf(err, "get admin %q", username)
	}
	return a, nil
}

func (r *AdminDBRepository) Authenticate(ctx context.Context, username, password string) (domain.Admin, error) {
	admin, err := r.Get(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		if err := r.compareDecoy(password); err != nil {
			return domain.Admin{}, err
		}
		return domain.Admin{}, errors.Wrap(domain.ErrUnauthorized, "invalid username or password")
	}
	if err != nil {
		return domain.Admin{}, err
	}
	if ok, err := r.matches(admin.PasswordHash, password); err != nil {
		return domain.Admin{}, err
	} else if !ok {
		return domain.Admin{}, errors.Wrap(domain.ErrUnauthorized, "invalid username or password")
	}
	return admin, nil
}

func (r *AdminDBRepository) GetSecretQuestion(ctx context.Context, username string) (string, error) {
	admin, err := r.Get(ctx, username)
	if err != nil {
		return "", err
	}
	return admin.SecretQuestion, nil
}

func (r *AdminDBRepository) ResetPassword(ctx context.Context, username, secretAnswer, newPassword string) error {
	if newPassword == "" {
		return errors.Wrap(domain.ErrBadRequest, "new password is required")
	}
	admin, err := r.Get(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		if err := r.compareDecoy(normalizeAnswer(secretAnswer)); err != nil {
			return err
		}
		return errors.Wrap(domain.ErrUnauthorized, "invalid username or secret answer")
	}
	if err != nil {
		return err
	}
	if ok, err := r.matches(admin.SecretAnswerHash, normalizeAnswer(secretAnswer)); err != nil {
		return err
	} else if !ok {
		return errors.Wrap(domain.ErrUnauthorized, "invalid username or secret answer")
	}
	return r.setPassword(ctx, admin.ID, newPassword)
}

func (r *AdminDBRepository) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if newPassword == "" {
		return errors.Wrap(domain.ErrBadRequest, "new password is required")
	}
	admin, err := r.Authenticate(ctx, username, oldPassword)
	if err != nil {
		return err
	}
	return r.setPassword(ctx, admin.ID, newPassword)
}

func (r *AdminDBRepository) setPassword(ctx context.Context, id int64, password string) error {
	hash, err := r.hash(password)
	if err != nil {
		return err
	}
	_, err = r.ExecContext(ctx, "UPDATE admins SET password = ? WHERE id = ?", hash, id)
	return errors.Wrapf(err, "update password of admin %d", id)
}

func (r *AdminDBRepository) hash(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), r.cost)
	if err != nil {
		return "", errors.Wrap(err, "hash secret")
	}
	return string(hash), nil
}

// compareDecoy compares secret against a stand-in hash of the repository's
// cost. The result is ignored.
func (r *AdminDBRepository) compareDecoy(secret string) error {
	r.decoyOnce.Do(func() {
		r.decoy, r.decoyErr = bcrypt.GenerateFromPassword([]byte("unknown admin"), r.cost)
	})
	if r.decoyErr != nil {
		return errors.Wrap(r.decoyErr, "hash decoy")
	}
	_, err := r.matches(string(r.decoy), secret)
	return err
}

func (r *AdminDBRepository) matches(hash, secret string) (bool, error) {
	err := r.compare([]byte(hash), []byte(secret))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "compare secret")
	}
	return true, nil
}

func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
