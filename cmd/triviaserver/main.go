// Command triviaserver wires storage, the handler factory, the TCP
// Communicator and the admin HTTP surface, then blocks on the admin stdin
// REPL. Grounded in Seednode-partybox's cobra Command/RunE shape.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"trivia/adminapi"
	"trivia/config"
	"trivia/questionsource"
	"trivia/server"
	"trivia/storage"
)

func main() {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "triviaserver",
		Short: "Multiplayer trivia server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(config.Load(v))
		},
	}
	config.Bind(cmd.Flags(), v)

	if err := cmd.Execute(); err != nil {
		log.Fatalf("⚠️ startup failure: %v", err)
	}
}

func run(cfg config.Config) error {
	source := questionsource.NewClient(cfg.QuestionSourceURL, 10*time.Second)
	store, err := storage.Open(cfg.DBPath, source)
	if err != nil {
		return err
	}

	if cfg.PopulateOnStart > 0 {
		if err := store.PopulateQuestions(cfg.PopulateOnStart); err != nil {
			log.Printf("⚠️ populate-on-start failed: %v", err)
		}
	}

	srv := server.New(store)

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		jwtSecret = randomSecret()
		log.Printf("ℹ️ no --jwt-secret given, generated an ephemeral one for this run")
	}
	adminPassword := cfg.AdminPassword
	if adminPassword == "" {
		adminPassword = randomSecret()
		log.Printf("ℹ️ no --admin-password given; generated admin password: %s", adminPassword)
	}
	adminSrv, err := adminapi.New(srv.Factory, jwtSecret, cfg.AdminUser, adminPassword)
	if err != nil {
		return err
	}
	go func() {
		if err := adminSrv.Listen(cfg.AdminBind); err != nil {
			log.Printf("⚠️ admin surface stopped: %v", err)
		}
	}()

	code := srv.Run(cfg.Bind)
	adminSrv.Shutdown()
	os.Exit(code)
	return nil
}

func randomSecret() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "trivia-fallback-secret"
	}
	return hex.EncodeToString(b)
}
