package utils

import (
	"log"
	"os"
)

var (
	JWTSecretKey string
	JWTIssuer    string
)

// InitJWT loads the shared secret the managed auth provider signs its
// access tokens with. The service only verifies tokens, it never mints them.
func InitJWT() {
	if os.Getenv("GO_ENV") == "test" && os.Getenv("JWT_SECRET_KEY") == "" {
		os.Setenv("JWT_SECRET_KEY", "test_secret_key")
	}

	JWTSecretKey = os.Getenv("JWT_SECRET_KEY")
	if JWTSecretKey == "" {
		log.Fatal("JWT Secret Key not set")
	}

	JWTIssuer = GetEnvAsString("JWT_ISSUER", "planner-auth")
}
