package web

import (
	"errors"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/NeRF-or-Nothing/go-scene-server/internal/common"
	"github.com/NeRF-or-Nothing/go-scene-server/internal/log"
	"github.com/NeRF-or-Nothing/go-scene-server/internal/models/scene"
	"github.com/NeRF-or-Nothing/go-scene-server/internal/services"
)

// indexPage is the HTML shell that boots the viewer.
const indexPage = `<!DOCTYPE html>
<html>
<head>
  <title>Viewer</title>
  <meta charset="UTF-8" />
  <link rel="stylesheet" type="text/css" href="/static/style.css"/>
</head>
<body>
  <div id="app"></div>
  <script type="module" src="static/app.js"></script>
</body>
</html>`

// Options configures the routes of a WebServer.
type Options struct {
	// StaticDir is served under /static.
	StaticDir   string
	CORSOrigins string
	// EnableEvents registers /events and /event.
	EnableEvents bool
}

type WebServer struct {
	app          *fiber.App
	options      Options
	sceneService *services.SceneService
	logger       *log.Logger
}

// NewWebServer builds the fiber app with all routes registered.
func NewWebServer(options Options, sceneService *services.SceneService, logger *log.Logger) *WebServer {
	s := &WebServer{
		options:      options,
		sceneService: sceneService,
		logger:       logger,
	}

	s.app = fiber.New(fiber.Config{
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          s.handleError,
		DisableStartupMessage: true,
	})

	s.app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: options.CORSOrigins,
		AllowHeaders: "Content-Type",
	}))

	s.SetupRoutes()
	return s
}

func (s *WebServer) Run(ip string, port int) error {
	return s.app.Listen(ip + ":" + strconv.Itoa(port))
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *WebServer) Shutdown() error {
	return s.app.Shutdown()
}

func (s *WebServer) SetupRoutes() {
	s.app.Get("/", s.indexView)
	s.app.Get("/scene", s.getScene)
	if s.options.EnableEvents {
		s.app.Get("/events", s.getEvents)
		s.app.Get("/event", s.getEvent)
	}
	s.app.Get("/routes", s.getRoutes)
	s.app.Get("/health", s.healthCheck)
	if s.options.StaticDir != "" {
		s.app.Static("/static", s.options.StaticDir)
	}
}

func (s *WebServer) indexView(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(http.StatusOK).SendString(indexPage)
}

func (s *WebServer) getScene(c *fiber.Ctx) error {
	s.logger.Info("Get scene request received")

	var req common.DocumentRequest
	if err := ValidateRequest(c, &req); err != nil {
		s.logger.Info("Get scene request validation failed:", err.Error())
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sc, err := s.sceneService.GetScene(c.UserContext())
	if err != nil {
		return s.sceneError(c, err)
	}

	body, err := scene.Serialize(sc)
	if err != nil {
		s.logger.Error("Failed to serialize scene:", err.Error())
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	s.logger.Info("Scene served")
	c.Set(fiber.HeaderCacheControl, cacheControl(sc))
	return sendDocument(c, negotiateFormat(c, req.Format), body)
}

func (s *WebServer) getEvent(c *fiber.Ctx) error {
	s.logger.Info("Get event request received")

	var req common.DocumentRequest
	if err := ValidateRequest(c, &req); err != nil {
		s.logger.Info("Get event request validation failed:", err.Error())
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sc, err := s.sceneService.GetEvent(c.UserContext())
	if err != nil {
		return s.sceneError(c, err)
	}

	body, err := scene.SerializeLegacy(sc)
	if err != nil {
		s.logger.Error("Failed to serialize event:", err.Error())
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	s.logger.Info("Event served")
	return sendDocument(c, negotiateFormat(c, req.Format), body)
}

func (s *WebServer) getEvents(c *fiber.Ctx) error {
	s.logger.Info("Get events request received")

	var req common.DocumentRequest
	if err := ValidateRequest(c, &req); err != nil {
		s.logger.Info("Get events request validation failed:", err.Error())
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	cursor, err := s.sceneService.GetEvents(c.UserContext())
	if err != nil {
		return s.sceneError(c, err)
	}

	body, err := json.Marshal(cursor)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return sendDocument(c, negotiateFormat(c, req.Format), body)
}

// sceneError translates model errors into responses. A broken scene is a server-side fault, so it is reported
// as 500 with the violations as diagnostics.
func (s *WebServer) sceneError(c *fiber.Ctx, err error) error {
	var schemaErr *scene.SchemaError
	var upstreamErr *scene.UpstreamError
	switch {
	case errors.Is(err, scene.ErrNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &schemaErr):
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":      "invalid scene document",
			"violations": schemaErr.Violations,
		})
	case errors.As(err, &upstreamErr):
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// handleError renders errors returned by handlers and fiber itself (unknown routes, missing static files) as JSON.
func (s *WebServer) handleError(c *fiber.Ctx, err error) error {
	code := http.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= http.StatusInternalServerError {
		s.logger.Errorf("Request %s %s failed: %v", c.Method(), c.Path(), err)
	} else {
		s.logger.Infof("Request %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func (s *WebServer) getRoutes(c *fiber.Ctx) error {
	s.logger.Info("Get routes request received")
	routes := s.app.GetRoutes(true)
	return c.Status(http.StatusOK).JSON(routes)
}

func (s *WebServer) healthCheck(c *fiber.Ctx) error {
	s.logger.Info("Health check request received")
	return c.SendString("OK")
}
