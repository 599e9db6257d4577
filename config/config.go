// Package config builds the server's Config from flags, environment
// variables (TRIVIA_ prefix) and an optional .env file, grounded in
// Seednode-partybox's cobra+pflag+viper wiring: flags are registered on a
// pflag.FlagSet, bound into viper, and every flag also gets an env
// override via v.BindPFlags + v.AutomaticEnv.
package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Bind                string
	DBPath              string
	QuestionSourceURL   string
	AdminBind           string
	JWTSecret           string
	AdminUser           string
	AdminPassword       string
	PopulateOnStart     int
}

// Bind registers every flag on fs and wires it through v with a
// TRIVIA_-prefixed environment override, matching the teacher pack's
// flag/env double-binding idiom.
func Bind(fs *pflag.FlagSet, v *viper.Viper) {
	fs.String("bind", "127.0.0.1:6969", "TCP address the trivia protocol listens on")
	fs.String("db", "trivia.db", "path to the sqlite database file (\":memory:\" for tests)")
	fs.String("question-source-url", "https://opentdb.com/api.php", "base URL of the external trivia question feed")
	fs.String("admin-bind", "127.0.0.1:6970", "HTTP address the admin surface listens on")
	fs.String("jwt-secret", "", "secret used to sign admin JWTs")
	fs.String("admin-user", "admin", "admin HTTP surface username")
	fs.String("admin-password", "", "admin HTTP surface password")
	fs.Int("populate-on-start", 0, "number of questions to fetch from the question source at startup")

	v.SetEnvPrefix("TRIVIA")
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		log.Fatalf("config: bind flags: %v", err)
	}
}

// Load reads .env best-effort (missing file is not an error, matching the
// teacher's main.go godotenv.Load habit) then materializes Config from v.
func Load(v *viper.Viper) Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("ℹ️ no .env file loaded: %v", err)
	}
	return Config{
		Bind:              v.GetString("bind"),
		DBPath:            v.GetString("db"),
		QuestionSourceURL: v.GetString("question-source-url"),
		AdminBind:         v.GetString("admin-bind"),
		JWTSecret:         v.GetString("jwt-secret"),
		AdminUser:         v.GetString("admin-user"),
		AdminPassword:     v.GetString("admin-password"),
		PopulateOnStart:   v.GetInt("populate-on-start"),
	}
}
