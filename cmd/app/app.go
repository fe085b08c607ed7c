package app

import (
	"log"

	"newsportal/internal/config"
	"newsportal/internal/database"
	"newsportal/internal/mailer"
	"newsportal/internal/queue"
	"newsportal/internal/repository"
	"newsportal/internal/service"
	"newsportal/internal/storage"
)

// App wires up every dependency of the portal: the database, the object
// storage, the mail queue and the service layer on top of them.
func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service, queue.Queue) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	if err := db.RunMigrations("migrations/001_create_tables.sql"); err != nil {
		log.Fatalf("Не удалось применить миграции: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	smtpMailer, err := mailer.NewSMTPMailer(cfg, "templates")
	if err != nil {
		log.Fatalf("Не удалось загрузить шаблоны писем: %v", err)
	}

	emailQueue := queue.NewWorkerQueue(cfg.QueueSize)

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient, emailQueue, smtpMailer)

	return db, repo, services, emailQueue
}
