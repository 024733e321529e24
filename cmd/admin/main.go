// Package main provides admin account management utilities for Atelier.
// There is no public signup; this is the only way accounts are created.
package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"os"

	"atelier/internal/config"
	"atelier/internal/database"
	"atelier/internal/models"
	"atelier/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin create <email> <name>       - Create an admin account")
		fmt.Println("  go run ./cmd/admin list                        - List all admin accounts")
		fmt.Println("  go run ./cmd/admin reset-password <email>      - Reset an admin's password")
		fmt.Println()
		fmt.Println("The password is taken from ADMIN_PASSWORD, or generated when unset.")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	repo := repository.NewAdminUserRepository(db)
	ctx := context.Background()
	command := os.Args[1]

	switch command {
	case "create":
		if len(os.Args) < 4 {
			fmt.Println("Usage: go run ./cmd/admin create <email> <name>")
			os.Exit(1)
		}
		createAdmin(ctx, repo, os.Args[2], os.Args[3])

	case "list":
		listAdmins(ctx, repo)

	case "reset-password":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin reset-password <email>")
			os.Exit(1)
		}
		resetPassword(ctx, repo, os.Args[2])

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func adminPassword() string {
	if pw := os.Getenv("ADMIN_PASSWORD"); pw != "" {
		return pw
	}

	buf := make([]byte, 18)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("Failed to generate password: %v", err)
	}
	pw := base64.RawURLEncoding.EncodeToString(buf)
	fmt.Printf("Generated password: %s\n", pw)
	return pw
}

func createAdmin(ctx context.Context, repo repository.AdminUserRepository, email, name string) {
	existing, err := repo.GetByEmail(ctx, email)
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}
	if existing != nil {
		fmt.Printf("Admin with email %s already exists (ID: %d)\n", email, existing.ID)
		os.Exit(1)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword()), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &models.AdminUser{Email: email, Name: name, Password: string(hashed)}
	if err := repo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Created admin %s <%s> (ID: %d)\n", admin.Name, admin.Email, admin.ID)
}

func listAdmins(ctx context.Context, repo repository.AdminUserRepository) {
	admins, err := repo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch admins: %v", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admin accounts found")
		return
	}

	for _, a := range admins {
		fmt.Printf("  %d  %s <%s>  created %s\n", a.ID, a.Name, a.Email, a.CreatedAt.Format("2006-01-02"))
	}
}

func resetPassword(ctx context.Context, repo repository.AdminUserRepository, email string) {
	admin, err := repo.GetByEmail(ctx, email)
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}
	if admin == nil {
		fmt.Printf("Admin with email %s not found\n", email)
		os.Exit(1)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword()), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if err := repo.UpdatePassword(ctx, admin.ID, string(hashed)); err != nil {
		log.Fatalf("Failed to update password: %v", err)
	}

	fmt.Printf("Password reset for %s (ID: %d)\n", admin.Email, admin.ID)
}
