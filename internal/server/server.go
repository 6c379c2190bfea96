// Package server exposes the pixel cipher over HTTP, with an upload form and a raw API.
package server

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/idelchi/pixelc/internal/config"
	"github.com/idelchi/pixelc/internal/imageio"
	"github.com/idelchi/pixelc/pkg/pixelcipher"
)

//go:embed templates/index.html
var templates embed.FS

const (
	actionEncrypt = "encrypt"
	actionDecrypt = "decrypt"

	shutdownTimeout = 5 * time.Second
)

// Server serves the upload form and the raw API.
type Server struct {
	engine    *gin.Engine
	cipher    *pixelcipher.Cipher
	addr      string
	maxUpload int64
	maxPixels int
}

// New builds the routes for cfg.
func New(cfg *config.Config) (*Server, error) {
	format, err := cfg.CipherFormat()
	if err != nil {
		return nil, err
	}

	cipher, err := pixelcipher.New(pixelcipher.WithFormat(format))
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	tmpl, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		engine:    gin.New(),
		cipher:    cipher,
		addr:      cfg.Server.Addr,
		maxUpload: cfg.Server.MaxUpload,
		maxPixels: cfg.Server.MaxPixels,
	}

	if s.maxPixels <= 0 {
		s.maxPixels = imageio.MaxPixels
	}

	s.engine.Use(gin.Logger(), gin.Recovery())
	s.engine.MaxMultipartMemory = s.maxUpload
	s.engine.SetHTMLTemplate(tmpl)

	s.engine.GET("/", s.index)
	s.engine.POST("/", s.form)
	s.engine.POST("/api/:action", s.api)
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)

	go func() {
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}

	return nil
}

func (s *Server) index(c *gin.Context) {
	s.render(c, http.StatusOK, gin.H{})
}

func (s *Server) form(c *gin.Context) {
	if err := s.parse(c); err != nil {
		s.render(c, statusOf(err), gin.H{"Error": err.Error()})

		return
	}

	action := c.PostForm("action")

	grid, err := s.process(c, action)
	if err != nil {
		s.render(c, statusOf(err), gin.H{"Error": err.Error()})

		return
	}

	uri, err := imageio.DataURI(grid)
	if err != nil {
		s.render(c, http.StatusInternalServerError, gin.H{"Error": err.Error()})

		return
	}

	s.render(c, http.StatusOK, gin.H{
		"Result":   template.URL(uri), //nolint:gosec // generated data URI
		"Download": action + "ed.png",
	})
}

func (s *Server) api(c *gin.Context) {
	if err := s.parse(c); err != nil {
		c.String(statusOf(err), "%v\n", err)

		return
	}

	grid, err := s.process(c, c.Param("action"))
	if err != nil {
		c.String(statusOf(err), "%v\n", err)

		return
	}

	var buf bytes.Buffer

	if err := imageio.Encode(&buf, grid, imageio.PNG); err != nil {
		c.String(http.StatusInternalServerError, "%v\n", err)

		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) render(c *gin.Context, status int, data gin.H) {
	data["Format"] = s.cipher.Format().String()

	c.HTML(status, "index.html", data)
}

// parse reads the multipart body, bounded by the upload limit.
func (s *Server) parse(c *gin.Context) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload)

	if err := c.Request.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return s.tooLarge()
		}

		return badRequest(fmt.Errorf("parsing form: %w", err))
	}

	return nil
}

// process decodes the uploaded image and applies action to it with the submitted key.
func (s *Server) process(c *gin.Context, action string) (pixelcipher.Grid, error) {
	if action != actionEncrypt && action != actionDecrypt {
		return pixelcipher.Grid{}, badRequest(fmt.Errorf("unknown action %q", action))
	}

	key := c.PostForm("key")
	if key == "" {
		return pixelcipher.Grid{}, badRequest(pixelcipher.ErrEmptyKey)
	}

	header, err := c.FormFile("image")
	if err != nil {
		return pixelcipher.Grid{}, badRequest(fmt.Errorf("reading upload: %w", err))
	}

	file, err := header.Open()
	if err != nil {
		return pixelcipher.Grid{}, fmt.Errorf("opening upload: %w", err)
	}
	defer file.Close()

	grid, _, err := imageio.DecodeLimit(file, s.maxPixels)
	if errors.Is(err, imageio.ErrTooManyPixels) {
		return pixelcipher.Grid{}, &httpError{status: http.StatusRequestEntityTooLarge, err: err}
	}

	if err != nil {
		return pixelcipher.Grid{}, badRequest(err)
	}

	if action == actionDecrypt {
		grid, err = s.cipher.Decrypt(grid, key)
	} else {
		grid, err = s.cipher.Encrypt(grid, key)
	}

	if err != nil {
		return pixelcipher.Grid{}, badRequest(err)
	}

	return grid, nil
}

func (s *Server) tooLarge() error {
	return &httpError{
		status: http.StatusRequestEntityTooLarge,
		err:    fmt.Errorf("upload exceeds the %s limit", humanize.IBytes(uint64(s.maxUpload))), //nolint:gosec // validated > 0
	}
}

type httpError struct {
	status int
	err    error
}

func (e *httpError) Error() string { return e.err.Error() }

func (e *httpError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return &httpError{status: http.StatusBadRequest, err: err}
}

func statusOf(err error) int {
	var he *httpError
	if errors.As(err, &he) {
		return he.status
	}

	return http.StatusInternalServerError
}
