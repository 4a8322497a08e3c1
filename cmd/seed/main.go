package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/reciclaqui/backend/config"
	"github.com/reciclaqui/backend/pkg/helpers"
)

// Seeds a demo eco-operator and recycler pair for local development.

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	operatorID := seedUser(db, "Cooperativa Verde", "operador@reciclaqui.dev", "password123", "ECOOPERATOR", "ecoponto-centro")
	recyclerID := seedUser(db, "Joana Recicladora", "joana@reciclaqui.dev", "password123", "RECYCLER", "")

	fmt.Printf("seeded eco-operator: id=%s email=operador@reciclaqui.dev password=password123\n", operatorID)
	fmt.Printf("seeded recycler:     id=%s email=joana@reciclaqui.dev password=password123\n", recyclerID)
}

func seedUser(db *sql.DB, name, email, password, role, ecopointID string) string {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (name, email, password_hash, role, ecopoint_id, points_balance)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), 0)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name, email, hash, role, ecopointID).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	return id
}
