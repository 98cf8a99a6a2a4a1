package main

import (
	"log"
	"net/http"
	"os"

	"blog/internal/auth"
	"blog/internal/config"
	"blog/internal/content"
	"blog/internal/db"
	"blog/internal/mail"
	"blog/internal/server"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	conf, err := config.New(envFile)
	if err != nil {
		log.Fatal(err)
	}
	database, err := db.Open(conf.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	repo := content.NewRepository(database)
	creds := auth.NewCredentialStore(database)
	sessions := auth.NewSessionManager(database)
	mailer := mail.NewSMTPMailer(conf.Mail)
	srv, err := server.New(repo, creds, sessions, mailer, conf.TemplateDir)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("listening on :%s", conf.Port)
	if err := http.ListenAndServe(":"+conf.Port, srv); err != nil {
		log.Fatal(err)
	}
}
