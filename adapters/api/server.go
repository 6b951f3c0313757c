package api

import (
	"bytes"
	"net/http"
	"path/filepath"
	"time"

	"classci/adapters/report"
	"classci/app"
	"classci/domain/core"
	"classci/internal"
	"classci/internal/config"
	"classci/internal/errors"

	"github.com/gin-gonic/gin"
)

// Server exposes the interval service over HTTP
type Server struct {
	router  *gin.Engine
	service *app.IntervalService
	plotDir string
	logger  *internal.Logger
}

// NewServer builds the router. Plot requests are honored only when
// cfg.Paths.PlotDir is set; clients never choose file names.
func NewServer(service *app.IntervalService, cfg *config.Config, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router:  gin.New(),
		service: service,
		plotDir: cfg.Paths.PlotDir,
		logger:  logger,
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api/intervals")
	api.POST("", s.handleBinary)
	api.POST("/one-vs-rest", s.handleOneVsRest)
	api.POST("/upload", s.handleUpload)
}

// Router returns the underlying handler
func (s *Server) Router() http.Handler {
	return s.router
}

// Start listens on addr until the server fails
func (s *Server) Start(addr string) error {
	s.logger.Info("starting interval API on %s", addr)
	return s.router.Run(addr)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// plotFilename returns a server-chosen stem, or "" when plotting is off
func (s *Server) plotFilename(requested bool) string {
	if !requested || s.plotDir == "" {
		return ""
	}
	return filepath.Join(s.plotDir, core.NewID().String()+".png")
}

type binaryBody struct {
	app.BinaryRequest
	Plot bool `json:"plot"`
}

func (s *Server) handleBinary(c *gin.Context) {
	var body binaryBody
	if err := c.ShouldBindJSON(&body); err != nil {
		s.fail(c, errors.InvalidInput("malformed request body: "+err.Error()))
		return
	}
	req := body.BinaryRequest
	req.PlotFilename = s.plotFilename(body.Plot)

	run, err := s.service.EstimateBinary(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, run)
}

type oneVsRestBody struct {
	app.OneVsRestRequest
	Plot bool `json:"plot"`
}

func (s *Server) handleOneVsRest(c *gin.Context) {
	var body oneVsRestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		s.fail(c, errors.InvalidInput("malformed request body: "+err.Error()))
		return
	}
	req := body.OneVsRestRequest
	req.PlotFilename = s.plotFilename(body.Plot)

	run, err := s.service.EstimateOneVsRest(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, run)
}

// respond renders the run in the format named by ?format=, JSON by default
func (s *Server) respond(c *gin.Context, run *app.Run) {
	doc := run.Document()

	format := report.JSONOut
	if name := c.Query("format"); name != "" {
		f, err := report.ParseFormat(name)
		if err != nil {
			s.fail(c, errors.InvalidInput(err.Error()))
			return
		}
		format = f
	}
	if format == report.JSONOut {
		c.JSON(http.StatusOK, doc)
		return
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, format, doc, report.DefaultOptions()); err != nil {
		s.fail(c, errors.Wrap(err, "failed to render report"))
		return
	}
	c.Data(http.StatusOK, contentTypes[format], buf.Bytes())
}

var contentTypes = map[report.Format]string{
	report.TableOut:    "text/plain; charset=utf-8",
	report.YAMLOut:     "application/yaml; charset=utf-8",
	report.CSVOut:      "text/csv; charset=utf-8",
	report.MarkdownOut: "text/markdown; charset=utf-8",
	report.HTMLOut:     "text/html; charset=utf-8",
}

// StatusFor maps an error code to an HTTP status
func StatusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeInvalidConfiguration, errors.CodeInvalidRequest, errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeNumericalDegeneracy:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	} else {
		s.logger.Warn("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}
