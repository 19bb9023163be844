package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"perpustakaan/internal/config"
	"perpustakaan/internal/db"
	"perpustakaan/internal/model"
	"perpustakaan/internal/repository"
)

// Seeds an admin account into the auth database and a starter catalog into
// the main database. Existing rows are left alone, so the seeder is safe to
// re-run.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load("") // the seeder listens on nothing
	ctx := context.Background()

	authDB, err := db.NewMySQL(cfg.AuthMySQLDSN)
	if err != nil {
		log.Fatalf("connect auth database: %v", err)
	}
	if err := authDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("migrate auth database: %v", err)
	}

	mainDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("connect main database: %v", err)
	}
	if err := mainDB.AutoMigrate(&model.Book{}, &model.Borrowing{}); err != nil {
		log.Fatalf("migrate main database: %v", err)
	}

	seedAdmin(ctx, authDB)
	seedBooks(ctx, mainDB)

	log.Println("Seed complete")
}

func seedAdmin(ctx context.Context, gormDB *gorm.DB) {
	userRepo := repository.NewUserRepository(gormDB)

	if _, err := userRepo.FindByUsername(ctx, "admin"); err == nil {
		log.Println("Admin account already present, skipping")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}

	admin := &model.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("create admin account: %v", err)
	}
	log.Println("Seeded admin account (username: admin)")
}

func seedBooks(ctx context.Context, gormDB *gorm.DB) {
	bookRepo := repository.NewBookRepository(gormDB)

	existing, err := bookRepo.List(ctx)
	if err != nil {
		log.Fatalf("list books: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Catalog already has %d books, skipping", len(existing))
		return
	}

	books := []model.Book{
		{Title: "Laskar Pelangi", Author: "Andrea Hirata", Year: 2005, Genre: "Fiction", Stock: 3},
		{Title: "Bumi Manusia", Author: "Pramoedya Ananta Toer", Year: 1980, Genre: "Historical Fiction", Stock: 2},
		{Title: "Negeri 5 Menara", Author: "Ahmad Fuadi", Year: 2009, Genre: "Fiction", Stock: 2},
		{Title: "Clean Code", Author: "Robert C. Martin", Year: 2008, Genre: "Software", Stock: 1},
		{Title: "The Go Programming Language", Author: "Donovan & Kernighan", Year: 2015, Genre: "Software", Stock: 2},
	}

	seeded := 0
	for i := range books {
		if err := bookRepo.Create(ctx, &books[i]); err != nil {
			log.Printf("Warning: seed book %q: %v", books[i].Title, err)
			continue
		}
		seeded++
	}
	log.Printf("Seeded %d books", seeded)
}
