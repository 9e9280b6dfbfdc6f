package main // optoken mints operator bearer tokens for the admin endpoints

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/railway-seat-reservation/internal/utils"
)

// optoken signs an HS256 operator token with the JWT_SECRET from the
// environment (or .env) and prints it to stdout.  Usage:
//
//	optoken -sub ops@example.com -ttl 24h
func main() {
	sub := flag.String("sub", "operator", "token subject, shown in request logs")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	tok, err := utils.NewOperatorToken(secret, *sub, *ttl)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Printf("%s\n", tok.Token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", tok.Exp.Format(time.RFC3339))
}
