package db_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/mural-studio/backend/db"
	"github.com/mural-studio/backend/domain"
)

func newAdminRepo(t *testing.T) db.AdminRepository {
	t.Helper()
	repo := db.NewAdminRepository(newTestDB(t), bcrypt.MinCost)
	_, err := repo.Register(context.Background(), domain.NewAdmin{
		Username:       "studio",
		Password:       "paint-it-all",
		SecretQuestion: "First mural?",
		SecretAnswer:   "  Sunflowers ",
	})
	if err != nil {
		t.Fatalf("unexpected error for Register: %s", err.Error())
	}
	return repo
}

func TestAdminRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newAdminRepo(t)

	admin, err := repo.Get(ctx, "studio")
	if err != nil {
		t.Fatalf("unexpected error for Get: %s", err.Error())
	}
	if admin.PasswordHash == "paint-it-all" || admin.SecretAnswerHash == "sunflowers" {
		t.Fatal("secrets stored in clear")
	}

	_, err = repo.Register(ctx, domain.NewAdmin{Username: "studio", Password: "x", SecretQuestion: "q", SecretAnswer: "a"})
	if !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("unexpected error for duplicate: %v", err)
	}
	_, err = repo.Register(ctx, domain.NewAdmin{Username: "other"})
	if !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("unexpected error for missing fields: %v", err)
	}
	if _, err := repo.Get(ctx, "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unexpected error for unknown admin: %v", err)
	}
}

func TestAdminAuthenticate(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		username, password string
		wantErr            error
	}{
		"correct password": {username: "studio", password: "paint-it-all"},
		"wrong password":   {username: "studio", password: "nope", wantErr: domain.ErrUnauthorized},
		"unknown username": {username: "nobody", password: "paint-it-all", wantErr: domain.ErrUnauthorized},
	}

	repo := newAdminRepo(t)
	for name, tt := range cases {
		admin, err := repo.Authenticate(context.Background(), tt.username, tt.password)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("%s: unexpected error: want: %v, got: %v", name, tt.wantErr, err)
			}
			continue
		}
		if err != nil || admin.Username != tt.username {
			t.Fatalf("%s: unexpected result: %+v, err %v", name, admin, err)
		}
	}
}

func TestAdminPasswordRecovery(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newAdminRepo(t)

	question, err := repo.GetSecretQuestion(ctx, "studio")
	if err != nil || question != "First mural?" {
		t.Fatalf("unexpected GetSecretQuestion: %q, err %v", question, err)
	}

	if err := repo.ResetPassword(ctx, "studio", "tulips", "new-password"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("unexpected error for wrong answer: %v", err)
	}
	if err := repo.ResetPassword(ctx, "nobody", "sunflowers", "new-password"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("unexpected error for unknown admin: %v", err)
	}
	if err := repo.ResetPassword(ctx, "studio", "SUNFLOWERS", "new-password"); err != nil {
		t.Fatalf("unexpected error for ResetPassword: %s", err.Error())
	}
	if _, err := repo.Authenticate(ctx, "studio", "new-password"); err != nil {
		t.Fatalf("new password rejected: %s", err.Error())
	}

	if err := repo.ChangePassword(ctx, "studio", "wrong", "other-password"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("unexpected error for wrong old password: %v", err)
	}
	if err := repo.ChangePassword(ctx, "studio", "new-password", "other-password"); err != nil {
		t.Fatalf("unexpected error for ChangePassword: %s", err.Error())
	}
	if _, err := repo.Authenticate(ctx, "studio", "new-password"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("old password still accepted: %v", err)
	}
}

func TestAdminUnknownUsernameStillCompares(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var compared [][]byte
	repo := db.NewAdminRepositoryWithComparator(newTestDB(t), bcrypt.MinCost, func(hash, secret []byte) error {
		compared = append(compared, hash)
		return bcrypt.CompareHashAndPassword(hash, secret)
	})
	_, err := repo.Register(ctx, domain.NewAdmin{
		Username:       "studio",
		Password:       "paint-it-all",
		SecretQuestion: "First mural?",
		SecretAnswer:   "sunflowers",
	})
	if err != nil {
		t.Fatalf("unexpected error for Register: %s", err.Error())
	}

	cases := map[string]func() error{
		"authenticate": func() error {
			_, err := repo.Authenticate(ctx, "nobody", "paint-it-all")
			return err
		},
		"reset password": func() error {
			return repo.ResetPassword(ctx, "nobody", "sunflowers", "new-password")
		},
	}

	for name, call := range cases {
		compared = nil
		if err := call(); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if len(compared) != 1 {
			t.Fatalf("%s: unexpected comparisons: want: 1, got: %d", name, len(compared))
		}
		cost, err := bcrypt.Cost(compared[0])
		if err != nil || cost != bcrypt.MinCost {
			t.Fatalf("%s: unexpected decoy hash cost: %d, err %v", name, cost, err)
		}
	}

	compared = nil
	if _, err := repo.Authenticate(ctx, "studio", "wrong"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("unexpected error for wrong password: %v", err)
	}
	if len(compared) != 1 {
		t.Fatalf("unexpected comparisons for known admin: %d", len(compared))
	}
}
