package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/allanweber/trading-journal-entry-sub000/utils"
)

// Mints a bearer token for local/dev calls against the API. The secret
// comes from API_SECRET, same as the server's validation side.
func main() {
	userID := flag.Int("user-id", 1, "User id claim for the token")
	role := flag.String("role", "user", "Role claim for the token")
	flag.Parse()

	if os.Getenv("TOKEN_HOUR_LIFESPAN") == "" {
		os.Setenv("TOKEN_HOUR_LIFESPAN", "24")
	}

	token, err := utils.JwtGenerate(*userID, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
