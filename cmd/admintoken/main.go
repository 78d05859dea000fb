// Command admintoken prints a bearer token for the /eth/accounts ledger routes,
// signed with the same JWT_SECRET/JWT_ISSUER the API server reads.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/baharkarakas/ethscan-backend/internal/auth"
	"github.com/baharkarakas/ethscan-backend/internal/config"
)

func main() {
	cfg := config.Load()

	subject := flag.String("sub", "operator", "token subject")
	role := flag.String("role", auth.RoleAdmin, "role claim")
	ttl := flag.Duration("ttl", cfg.JWTTTL, "token lifetime")
	flag.Parse()

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, *ttl)
	tok, exp, err := tm.Generate(*subject, *role)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sign:", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "expires %s\n", exp.Format(time.RFC3339))
	fmt.Println(tok)
}
