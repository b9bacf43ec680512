package config

import (
	"os"

	"github.com/joho/godotenv"
)

// envFiles in priority order. godotenv.Load never overwrites an
// already-set variable, so OS env vars win over .env.local, which
// wins over .env. This is where OPENAI_API_KEY typically lives for
// local development.
var envFiles = []string{".env.local", ".env"}

// LoadDotEnv loads the env files that exist and returns their names.
func LoadDotEnv() []string {
	var loaded []string
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}
