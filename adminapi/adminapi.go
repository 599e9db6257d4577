// Package adminapi is the JWT-gated HTTP side-channel for operational
// tasks (health, metrics, question-bank population), kept entirely
// separate from the player-facing TCP protocol. It is grounded in the
// teacher's fiber route wiring (main.go) and middleware/auth.go's JWT
// bearer-token check, repurposed here for operator auth rather than
// player auth — the spec's plaintext-password Non-goal binds player
// login specifically, not this additive operator surface.
package adminapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"trivia/handlers"
)

// Server wires the admin HTTP surface on top of the same Factory the TCP
// Communicator drives, plus a single operator credential.
type Server struct {
	app           *fiber.App
	factory       *handlers.Factory
	jwtSecret     []byte
	adminUser     string
	adminPassHash []byte
	startedAt     time.Time
}

func New(factory *handlers.Factory, jwtSecret, adminUser, adminPassword string) (*Server, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	s := &Server{
		app:           fiber.New(fiber.Config{DisableStartupMessage: true}),
		factory:       factory,
		jwtSecret:     []byte(jwtSecret),
		adminUser:     adminUser,
		adminPassHash: hash,
		startedAt:     time.Now(),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.app.Post("/admin/login", s.handleLogin)
	s.app.Get("/metrics", s.requireJWT, s.handleMetrics)
	s.app.Post("/admin/populate-questions", s.requireJWT, s.handlePopulateQuestions)
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var p loginPayload
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if p.Username != s.adminUser || bcrypt.CompareHashAndPassword(s.adminPassHash, []byte(p.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}
	claims := jwt.MapClaims{
		"sub": p.Username,
		"exp": time.Now().Add(12 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not sign token"})
	}
	return c.JSON(fiber.Map{"token": signed})
}

func (s *Server) requireJWT(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
	}
	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
	}
	return c.Next()
}

func (s *Server) handleMetrics(c *fiber.Ctx) error {
	rooms := s.factory.Room.Rooms()
	active := 0
	for _, r := range rooms {
		if _, ok := s.factory.Game.Game(r.ID); ok {
			active++
		}
	}
	return c.JSON(fiber.Map{
		"rooms":        len(rooms),
		"active_games": active,
		"uptime_sec":   int(time.Since(s.startedAt).Seconds()),
	})
}

func (s *Server) handlePopulateQuestions(c *fiber.Ctx) error {
	n, err := strconv.Atoi(c.Query("n", "10"))
	if err != nil || n <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "n must be a positive integer"})
	}
	if err := s.factory.Store.PopulateQuestions(n); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

