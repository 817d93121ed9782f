package server

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/devikas9895151/Canva-page/internal/canvas"
	"github.com/devikas9895151/Canva-page/internal/config"
	"github.com/devikas9895151/Canva-page/internal/handler"
	"github.com/devikas9895151/Canva-page/internal/session"
)

// Server Fiber 서버 래퍼
type Server struct {
	app            *fiber.App
	cfg            *config.Config
	registry       *canvas.Registry
	sessions       *session.Manager
	boardWSHandler *handler.BoardWSHandler
	healthHandler  *handler.HealthHandler
	stopJanitor    chan struct{}
}

// New 새 서버 인스턴스 생성
func New(cfg *config.Config) *Server {
	app := fiber.New(fiber.Config{
		AppName:         "Collaborative Canvas Sync",
		ServerHeader:    "Fiber",
		StrictRouting:   true,
		CaseSensitive:   true,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		Prefork:         false, // WebSocket과 호환성 문제로 비활성화
		ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: cfg.WebSocket.WriteBufferSize,
	})

	registry := canvas.NewRegistry()
	sessions := session.NewManager()

	return &Server{
		app:            app,
		cfg:            cfg,
		registry:       registry,
		sessions:       sessions,
		boardWSHandler: handler.NewBoardWSHandler(registry, sessions, cfg),
		healthHandler:  handler.NewHealthHandler(registry, sessions),
		stopJanitor:    make(chan struct{}),
	}
}

// SetupMiddleware 미들웨어 설정
func (s *Server) SetupMiddleware() {
	// 패닉 복구
	s.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// 로깅
	s.app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	// CORS
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: s.cfg.CORS.AllowOrigins,
		AllowHeaders: s.cfg.CORS.AllowHeaders,
		AllowMethods: "GET, POST, OPTIONS",
	}))
}

// SetupRoutes 라우트 설정
func (s *Server) SetupRoutes() {
	// 헬스체크 엔드포인트
	s.app.Get("/health", s.healthHandler.Check)
	s.app.Get("/health/live", s.healthHandler.Liveness)
	s.app.Get("/stats", s.healthHandler.Stats)

	// Rate Limiter (연결 폭주 방지)
	wsLimiter := limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many requests, please try again later",
			})
		},
	})

	// WebSocket 업그레이드 체크 미들웨어
	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket 캔버스 동기화 엔드포인트
	s.app.Get("/ws/board/:roomId", wsLimiter, func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		roomID := c.Params("roomId")
		if roomID == "" {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		c.Locals("roomId", roomID)

		return c.Next()
	}, websocket.New(s.boardWSHandler.HandleWebSocket, websocket.Config{
		ReadBufferSize:  s.cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: s.cfg.WebSocket.WriteBufferSize,
	}))
}

// Start 서버 시작 (Graceful Shutdown 지원)
func (s *Server) Start() error {
	// 유휴 방 정리
	go s.registry.RunJanitor(s.cfg.Canvas.RoomIdleTTL, s.sessions.RoomOccupied, s.stopJanitor)

	// Graceful Shutdown 설정
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("🛑 Shutting down server...")
		close(s.stopJanitor)
		if err := s.app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Fatalf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("🚀 Collaborative Canvas Sync starting on %s", s.cfg.Server.Port)
	log.Printf("📡 WebSocket endpoint: ws://localhost%s/ws/board/:roomId", s.cfg.Server.Port)

	return s.app.Listen(s.cfg.Server.Port)
}

// Shutdown 서버 종료
func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(30 * time.Second)
}
