package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/mural-studio/backend/config"
	"github.com/mural-studio/backend/db"
	"github.com/mural-studio/backend/domain"
	"github.com/mural-studio/backend/handler"
	"github.com/mural-studio/backend/notify"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("failed to load .env: %s", err.Error())
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	sqlDB, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %s", err.Error())
	}
	defer sqlDB.Close()

	if err := db.Migrate(context.Background(), sqlDB); err != nil {
		log.Fatalf("failed to migrate database: %s", err.Error())
	}

	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	switch cmd {
	case "serve":
		err = serve(cfg, sqlDB)
	case "add-admin":
		err = addAdmin(cfg, sqlDB, os.Args[2:])
	default:
		err = errors.Errorf("unknown command %q, expected serve or add-admin", cmd)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func serve(cfg config.Config, sqlDB *sql.DB) error {
	cipher, err := db.NewSecretboxCipher(cfg.Key)
	if err != nil {
		return err
	}

	var mailer notify.Mailer = notify.Discard{}
	if cfg.SMTP.Enabled() {
		mailer = &notify.SMTPMailer{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			User:     cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}
	}

	h := &handler.Handler{
		ItemRepo:     db.NewItemRepository(sqlDB),
		OrderRepo:    db.NewOrderRepository(sqlDB, cipher),
		MuralRepo:    db.NewMuralRepository(sqlDB),
		MessageRepo:  db.NewMessageRepository(sqlDB),
		HomepageRepo: db.NewHomepageRepository(sqlDB),
		IGPostRepo:   db.NewIGPostRepository(sqlDB),
		AdminRepo:    db.NewAdminRepository(sqlDB, cfg.BcryptWorkFactor),
		Tokens:       handler.NewTokenIssuer(cfg.SecretKey),
		Images:       &handler.ImageStore{Dir: cfg.ImageDir},
		Mailer:       mailer,
		AdminEmail:   cfg.AdminEmail,
	}
	e := handler.NewServer(h, cfg.FrontendURL)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatalf("failed to serve: %s", err.Error())
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	e.Logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return errors.Wrap(e.Shutdown(ctx), "shutdown")
}

// addAdmin registers an admin from the command line so the first account can
// exist before anyone is able to log in.
func addAdmin(cfg config.Config, sqlDB *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-admin", flag.ExitOnError)
	username := fs.String("username", "", "username of the new admin")
	password := fs.String("password", "", "password of the new admin")
	question := fs.String("question", "", "secret question for password recovery")
	answer := fs.String("answer", "", "answer to the secret question")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" || *question == "" || *answer == "" {
		fs.PrintDefaults()
		return errors.New("username, password, question and answer are required")
	}

	admin, err := db.NewAdminRepository(sqlDB, cfg.BcryptWorkFactor).Register(context.Background(), domain.NewAdmin{
		Username:       *username,
		Password:       *password,
		SecretQuestion: *question,
		SecretAnswer:   *answer,
	})
	if err != nil {
		return err
	}
	fmt.Printf("admin %q created\n", admin.Username)
	return nil
}
