package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/devikas9895151/Canva-page/internal/canvas"
	"github.com/devikas9895151/Canva-page/internal/session"
)

// HealthHandler 헬스체크 핸들러
type HealthHandler struct {
	registry  *canvas.Registry
	sessions  *session.Manager
	startedAt time.Time
}

// NewHealthHandler HealthHandler 생성
func NewHealthHandler(registry *canvas.Registry, sessions *session.Manager) *HealthHandler {
	return &HealthHandler{
		registry:  registry,
		sessions:  sessions,
		startedAt: time.Now(),
	}
}

// HealthResponse 헬스체크 응답
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime"`
}

// StatsResponse 서버 통계 응답
type StatsResponse struct {
	Rooms   int `json:"rooms"`
	Clients int `json:"clients"`
	Strokes int `json:"strokes"`
}

// Check 전체 상태 확인
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Liveness K8s liveness probe용 (단순 체크)
func (h *HealthHandler) Liveness(c *fiber.Ctx) error {
	return c.SendString("OK")
}

// Stats 방/접속자/획 수 조회
func (h *HealthHandler) Stats(c *fiber.Ctx) error {
	rooms, strokes := h.registry.Stats()
	return c.JSON(StatsResponse{
		Rooms:   rooms,
		Clients: h.sessions.Count(),
		Strokes: strokes,
	})
}
