package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/google/uuid"
	"github.com/sethvargo/go-password/password"

	"newsportal/internal/config"
	"newsportal/internal/database"
	"newsportal/internal/models"
	"newsportal/internal/repository"
)

var (
	firstNames = []string{"Иван", "Мария", "Петр", "Анна", "Сергей", "Ольга", "Дмитрий", "Елена"}
	lastNames  = []string{"Иванов", "Петрова", "Сидоров", "Кузнецова", "Смирнов", "Попова"}
	topics     = []string{models.TopicNature, models.TopicSport, models.TopicArt, models.TopicTravel}
)

// seed fills the database with demo companies, active users and posts.
func main() {
	companies := flag.Int("companies", 3, "количество компаний")
	usersPerCompany := flag.Int("users", 5, "пользователей на компанию")
	postsPerUser := flag.Int("posts", 4, "постов на пользователя")
	flag.Parse()

	cfg := config.LoadConfig()

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer db.CloseDB()

	if err := db.RunMigrations("migrations/001_create_tables.sql"); err != nil {
		log.Fatalf("Не удалось применить миграции: %v", err)
	}

	repo := repository.NewRepository(db.DB)
	ctx := context.Background()

	for c := 0; c < *companies; c++ {
		company := &models.Company{
			Name:    fmt.Sprintf("Компания %d", c+1),
			URL:     strPtr(fmt.Sprintf("https://company%d.example.com", c+1)),
			Address: strPtr(fmt.Sprintf("ул. Примерная, д. %d", c+1)),
		}
		if err := repo.Company.Create(ctx, company); err != nil {
			log.Fatalf("Не удалось создать компанию: %v", err)
		}

		for u := 0; u < *usersPerCompany; u++ {
			pass, err := password.Generate(12, 3, 0, false, false)
			if err != nil {
				log.Fatalf("Не удалось сгенерировать пароль: %v", err)
			}

			role := models.RoleClient
			if u == 0 {
				role = models.RoleAdmin
			}

			user := &models.User{
				Email:          fmt.Sprintf("user-%s@company%d.example.com", uuid.NewString()[:8], c+1),
				Role:           role,
				IsStaff:        role == models.RoleAdmin,
				IsActive:       true,
				InviteAccepted: true,
				FirstName:      strPtr(firstNames[rand.Intn(len(firstNames))]),
				LastName:       strPtr(lastNames[rand.Intn(len(lastNames))]),
				CompanyID:      &company.CompanyID,
			}
			if err := repo.User.CreateUser(ctx, user, pass); err != nil {
				log.Fatalf("Не удалось создать пользователя: %v", err)
			}

			fmt.Printf("%s\t%s\t%s\n", user.Email, role, pass)

			for p := 0; p < *postsPerUser; p++ {
				post := &models.Post{
					Title:    fmt.Sprintf("Новость %d от %s", p+1, user.Email),
					Text:     strPtr("Текст демонстрационной новости для наполнения портала."),
					Topic:    topics[rand.Intn(len(topics))],
					AuthorID: user.UserID,
				}
				if err := repo.Post.Create(ctx, post); err != nil {
					log.Fatalf("Не удалось создать пост: %v", err)
				}
			}
		}
	}

	fmt.Println("Наполнение завершено")
}

func strPtr(s string) *string { return &s }
