// admin-token mints a bearer token for the admin import endpoints.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"phoneflip/internal/adminauth"
	"phoneflip/pkg/utils"
)

func main() {
	operator := flag.String("operator", "ops", "operator name embedded in the token")
	ttl := flag.Duration("ttl", 0, "token lifetime, defaults to ADMIN_JWT_TTL")
	flag.Parse()

	cfg := utils.LoadConfig()

	duration := cfg.AdminJWTTTL
	if *ttl > 0 {
		duration = *ttl
	}

	tokens := adminauth.TokenService{
		Secret:   []byte(cfg.AdminJWTSecret),
		Issuer:   cfg.AdminJWTIssuer,
		Duration: duration,
	}

	token, exp, err := tokens.Sign(*operator)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}

	fmt.Println(token)
	fmt.Printf("expires: %s\n", exp.Format(time.RFC3339))
}
