package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// Seeds demo users, scripts and two days of NAVs so buy/redeem/portfolio can
// be exercised against a fresh database.
func main() {
	godotenv.Load()
	dbURL := os.Getenv("POSTGRES_URL")
	if dbURL == "" {
		log.Fatal("POSTGRES_URL is required")
	}

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	users := map[string]string{
		"admin":        "admin123",
		"regularUser1": "password1",
		"regularUser2": "password2",
	}
	for name, pass := range users {
		role := "USER"
		if name == "admin" {
			role = "ADMIN"
		}
		hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
		_, err := db.ExecContext(ctx, `INSERT INTO users (username, password_hash, role) VALUES ($1, $2, $3) ON CONFLICT (username) DO NOTHING`, name, string(hash), role)
		if err != nil {
			fmt.Printf("Warning: could not insert user %s: %v\n", name, err)
		}
	}

	scripts := [][4]string{
		{"HDFC_EQTY", "HDFC Equity Growth Fund", "Equity", "HDFC AMC"},
		{"ICICI_BOND", "ICICI Prudential Bond Fund", "Debt", "ICICI AMC"},
		{"AXIS_BAL", "Axis Balanced Advantage Fund", "Hybrid", "Axis Mutual"},
	}
	for _, s := range scripts {
		_, err := db.ExecContext(ctx, `INSERT INTO scripts (fund_code, name, category, amc) VALUES ($1, $2, $3, $4) ON CONFLICT (fund_code) DO NOTHING`, s[0], s[1], s[2], s[3])
		if err != nil {
			fmt.Printf("Warning: could not insert script %s: %v\n", s[0], err)
		}
	}

	today := time.Now().UTC().Format("2006-01-02")
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

	navs := []struct {
		code  string
		date  string
		value string
	}{
		{"HDFC_EQTY", yesterday, "316.70"},
		{"HDFC_EQTY", today, "319.20"},
		{"ICICI_BOND", yesterday, "100.25"},
		{"ICICI_BOND", today, "102.75"},
		{"AXIS_BAL", yesterday, "210.80"},
		{"AXIS_BAL", today, "213.40"},
	}
	for _, n := range navs {
		_, err := db.ExecContext(ctx, `
			INSERT INTO navs (script_id, nav_date, nav_value)
			SELECT id, $2::date, $3::numeric FROM scripts WHERE fund_code = $1
			ON CONFLICT (script_id, nav_date) DO NOTHING`, n.code, n.date, n.value)
		if err != nil {
			fmt.Printf("Warning: could not insert nav for %s on %s: %v\n", n.code, n.date, err)
		}
	}

	fmt.Println("Successfully seeded demo data!")
}
