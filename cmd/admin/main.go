// Package main provides role management utilities for Flock.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"flock/internal/config"
	"flock/internal/database"
	"flock/internal/models"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin/main.go grant <user_id> <role>   - Grant a role (user, moderator, admin)")
		fmt.Println("  go run ./cmd/admin/main.go revoke <user_id> <role>  - Revoke a role")
		fmt.Println("  go run ./cmd/admin/main.go list-admins              - List all admins")
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

	command := os.Args[1]

	switch command {
	case "grant":
		if len(os.Args) < 4 {
			fmt.Println("Usage: go run ./cmd/admin/main.go grant <user_id> <role>")
			os.Exit(1)
		}
		grantRole(db, os.Args[2], os.Args[3])

	case "revoke":
		if len(os.Args) < 4 {
			fmt.Println("Usage: go run ./cmd/admin/main.go revoke <user_id> <role>")
			os.Exit(1)
		}
		revokeRole(db, os.Args[2], os.Args[3])

	case "list-admins":
		listAdmins(db)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func loadUser(db *gorm.DB, userID string) *models.User {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with ID %s not found\n", userID)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}
	return &user
}

func grantRole(db *gorm.DB, userID, role string) {
	if !models.ValidRole(role) {
		fmt.Printf("Unknown role %q\n", role)
		os.Exit(1)
	}

	user := loadUser(db, userID)
	if user.HasRole(role) {
		fmt.Printf("User %s (ID: %d) already has role %s\n", user.Username, user.ID, role)
		return
	}

	user.Roles = append(user.Roles, role)
	if err := db.Save(user).Error; err != nil {
		log.Fatalf("Failed to grant role: %v", err)
	}

	fmt.Printf("Granted %s to %s (ID: %d)\n", role, user.Username, user.ID)
}

func revokeRole(db *gorm.DB, userID, role string) {
	user := loadUser(db, userID)
	if !user.HasRole(role) {
		fmt.Printf("User %s (ID: %d) does not have role %s\n", user.Username, user.ID, role)
		return
	}

	kept := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		if r != role {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		kept = []string{models.RoleUser}
	}
	user.Roles = kept

	if err := db.Save(user).Error; err != nil {
		log.Fatalf("Failed to revoke role: %v", err)
	}

	fmt.Printf("Revoked %s from %s (ID: %d)\n", role, user.Username, user.ID)
}

func listAdmins(db *gorm.DB) {
	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		log.Fatalf("Failed to fetch users: %v", err)
	}

	admins := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.IsAdmin() {
			admins = append(admins, u)
		}
	}

	if len(admins) == 0 {
		fmt.Println("No admins found in the system")
		return
	}

	fmt.Println("\nCurrent Admins:")
	for _, admin := range admins {
		fmt.Printf("ID: %d | Username: %s | Email: %s\n", admin.ID, admin.Username, admin.Email)
	}
}
