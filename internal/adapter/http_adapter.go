package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"yogaday/local-app/internal/data"
	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/model"
	"yogaday/local-app/internal/session"
	"yogaday/local-app/internal/storage"
)

// SessionHeader lets an HTTP client address its own session. Requests
// without it share the adapter's default session.
const SessionHeader = "X-Session-ID"

// HTTPAdapter serves the library over a JSON API
type HTTPAdapter struct {
	adapterManager *AdapterManager
	router         *gin.Engine
	server         *http.Server
	listener       net.Listener
	addr           string
	sessionID      string
	mu             sync.Mutex
	logger         *log.Logger
}

type nameInput struct {
	Name string `json:"name" binding:"required"`
}

type moveInput struct {
	From *int `json:"from" binding:"required"`
	To   *int `json:"to" binding:"required"`
}

type imageInput struct {
	Path string `json:"path" binding:"required"`
}

type flowAsanaInput struct {
	AsanaID int64 `json:"asanaId" binding:"required"`
}

type toggleInput struct {
	Tag string `json:"tag" binding:"required"`
}

type viewInput struct {
	View string `json:"view" binding:"required"`
}

// NewHTTPAdapter creates the adapter, its default session and the router
func NewHTTPAdapter(am *AdapterManager, addr string, logger *log.Logger) (*HTTPAdapter, error) {
	if am == nil {
		return nil, errors.New("adapter manager is nil")
	}
	sessionID, err := am.SessionAdd()
	if err != nil {
		return nil, fmt.Errorf("failed to add http session: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	a := &HTTPAdapter{
		adapterManager: am,
		addr:           addr,
		sessionID:      sessionID,
		logger:         logger,
	}
	a.router = gin.New()
	a.router.Use(gin.Recovery(), a.requestLogger())
	a.routes()

	logger.Info(context.Background(), "HTTP adapter created", log.Fields{"addr": addr, "sessionID": sessionID})
	return a, nil
}

func (a *HTTPAdapter) routes() {
	a.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := a.router.Group("/v1")
	{
		v1.GET("/status", a.handleStatus)
		v1.PUT("/view", a.handleView)

		v1.GET("/asanas", a.handleList("asana"))
		v1.POST("/asanas", a.handleCreate("asana"))
		v1.POST("/asanas/move", a.handleAsanaMove)
		v1.GET("/asanas/:id", a.handleShow("asana"))
		v1.PATCH("/asanas/:id", a.handleAsanaUpdate)
		v1.DELETE("/asanas/:id", a.handleDelete("asana"))
		v1.POST("/asanas/:id/image", a.handleAsanaImage)

		v1.GET("/flows", a.handleList("flow"))
		v1.POST("/flows", a.handleCreate("flow"))
		v1.GET("/flows/:id", a.handleShow("flow"))
		v1.PATCH("/flows/:id", a.handleFlowUpdate)
		v1.DELETE("/flows/:id", a.handleDelete("flow"))
		v1.POST("/flows/:id/asanas", a.handleFlowAsanaAdd)
		v1.DELETE("/flows/:id/asanas/:index", a.handleFlowAsanaRemove)

		v1.POST("/edit/:kind/:id", a.handleEditBegin)
		v1.POST("/edit/:kind/save", a.handleEditEnd("save"))
		v1.POST("/edit/:kind/cancel", a.handleEditEnd("cancel"))

		v1.GET("/tags/:domain", a.handleTagList)
		v1.POST("/tags/:domain", a.handleTagAdd)
		v1.PUT("/tags/:domain/:name", a.handleTagRename)
		v1.DELETE("/tags/:domain/:name", a.handleTagRemove)

		v1.GET("/filters", a.handleFilterShow)
		v1.POST("/filters/:domain/toggle", a.handleFilterToggle)
		v1.DELETE("/filters/:domain", a.handleFilterClear)

		v1.POST("/drop", a.handleDrop)
		v1.GET("/export", a.handleExport)
		v1.POST("/import", a.handleImport)
	}
}

// Handler returns the router, mainly for tests
func (a *HTTPAdapter) Handler() http.Handler {
	return a.router
}

// AdapterStart binds the listen address and serves in the background
func (a *HTTPAdapter) AdapterStart() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.addr, err)
	}
	a.listener = ln
	a.server = &http.Server{Handler: a.router, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error(context.Background(), "HTTP server failed", log.Fields{"error": err})
		}
	}()
	a.logger.Info(context.Background(), "HTTP adapter listening", log.Fields{"addr": ln.Addr().String()})
	return nil
}

// AdapterStop shuts the server down and drops the default session
func (a *HTTPAdapter) AdapterStop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var err error
	if a.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = a.server.Shutdown(ctx)
		a.server = nil
	}
	a.adapterManager.SessionDelete(a.sessionID)
	a.logger.Info(context.Background(), "HTTP adapter stopped", nil)
	return err
}

// GetType returns "http"
func (a *HTTPAdapter) GetType() string {
	return "http"
}

// Addr returns the bound address once started
func (a *HTTPAdapter) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener == nil {
		return a.addr
	}
	return a.listener.Addr().String()
}

func (a *HTTPAdapter) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		a.logger.Debug(c.Request.Context(), "HTTP request", log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
	}
}

// run executes a command in the caller's session and writes the outcome
func (a *HTTPAdapter) run(c *gin.Context, okStatus int, cmd model.Command) {
	sessionID := c.GetHeader(SessionHeader)
	if sessionID == "" {
		sessionID = a.sessionID
	}

	result, err := a.adapterManager.CommandRun(sessionID, cmd)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if msg, ok := result.(string); ok {
		c.JSON(okStatus, gin.H{"message": msg})
		return
	}
	c.JSON(okStatus, result)
}

// statusFor maps command errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, data.ErrAsanaNotFound),
		errors.Is(err, data.ErrFlowNotFound),
		errors.Is(err, data.ErrTagNotFound),
		errors.Is(err, data.ErrNotMember),
		errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, data.ErrTagExists),
		errors.Is(err, data.ErrNotEditing):
		return http.StatusConflict
	case errors.Is(err, session.ErrConfirmationRequired):
		return http.StatusPreconditionRequired
	case errors.Is(err, session.ErrUsage),
		errors.Is(err, data.ErrTagEmpty),
		errors.Is(err, data.ErrTagUnchanged),
		errors.Is(err, data.ErrNameEmpty),
		errors.Is(err, data.ErrIndexRange),
		errors.Is(err, data.ErrNotImage),
		errors.Is(err, data.ErrInvalidLibrary),
		errors.Is(err, storage.ErrChecksumMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func command(scope, op string, args ...string) model.Command {
	return model.Command{Scope: scope, Operation: op, Args: args}
}

func (a *HTTPAdapter) handleStatus(c *gin.Context) {
	a.run(c, http.StatusOK, command("system", "status"))
}

func (a *HTTPAdapter) handleView(c *gin.Context) {
	var input viewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	a.run(c, http.StatusOK, model.Command{Scope: "view", Args: []string{input.View}})
}

func (a *HTTPAdapter) handleList(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cmd := command(scope, "list")
		if all, _ := strconv.ParseBool(c.Query("all")); all {
			cmd.Args = append(cmd.Args, "--all")
		}
		a.run(c, http.StatusOK, cmd)
	}
}

func (a *HTTPAdapter) handleCreate(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		a.run(c, http.StatusCreated, command(scope, "add"))
	}
}

func (a *HTTPAdapter) handleShow(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		a.run(c, http.StatusOK, command(scope, "show", c.Param("id")))
	}
}

func (a *HTTPAdapter) handleDelete(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		a.run(c, http.StatusOK, command(scope, "delete", c.Param("id")))
	}
}

func (a *HTTPAdapter) handleAsanaUpdate(c *gin.Context) {
	var patch model.AsanaPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	cmd := command("asana", "update", c.Param("id"))
	cmd.Payload = patch
	a.run(c, http.StatusOK, cmd)
}

func (a *HTTPAdapter) handleAsanaMove(c *gin.Context) {
	var input moveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	a.run(c, http.StatusOK, command("asana", "move", strconv.Itoa(*input.From), strconv.Itoa(*input.To)))
}

func (a *HTTPAdapter) handleAsanaImage(c *gin.Context) {
	var input imageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	a.run(c, http.StatusAccepted, command("asana", "image", c.Param("id"), input.Path))
}

func (a *HTTPAdapter) handleFlowUpdate(c *gin.Context) {
	var patch model.FlowPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	cmd := command("flow", "update", c.Param("id"))
	cmd.Payload = patch
	a.run(c, http.StatusOK, cmd)
}

func (a *HTTPAdapter) handleFlowAsanaAdd(c *gin.Context) {
	var input flowAsanaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	a.run(c, http.StatusOK, command("flow", "add-asana", c.Param("id"), strconv.FormatInt(input.AsanaID, 10)))
}

func (a *HTTPAdapter) handleFlowAsanaRemove(c *gin.Context) {
	a.run(c, http.StatusOK, command("flow", "remove-asana", c.Param("id"), c.Param("index")))
}

func (a *HTTPAdapter) handleEditBegin(c *gin.Context) {
	kind, err := model.ParseTagDomain(c.Param("kind"))
	if err != nil {
		badRequest(c, err)
		return
	}
	a.run(c, http.StatusOK, command(string(kind), "edit", c.Param("id")))
}

func (a *HTTPAdapter) handleEditEnd(op string) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, err := model.ParseTagDomain(c.Param("kind"))
		if err != nil {
			badRequest(c, err)
			return
		}
		a.run(c, http.StatusOK, command(string(kind), op))
	}
}

func (a *HTTPAdapter) handleTagList(c *gin.Context) {
	a.run(c, http.StatusOK, command("tag", "list", c.Param("domain")))
}

func (a *HTTPAdapter) handleTagAdd(c *gin.Context) {
	var input nameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	a.run(c, http.StatusCreated, command("tag", "add", c.Param("domain"), input.Name))
}

func (a *HTTPAdapter) handleTagRename(c *gin.Context) {
	var input nameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	a.run(c, http.StatusOK, command("tag", "rename", c.Param("domain"), c.Param("name"), input.Name))
}

func (a *HTTPAdapter) handleTagRemove(c *gin.Context) {
	cmd := command("tag", "remove", c.Param("domain"), c.Param("name"))
	if confirmed, _ := strconv.ParseBool(c.Query("confirm")); confirmed {
		cmd.Args = append(cmd.Args, "--yes")
	}
	a.run(c, http.StatusOK, cmd)
}

func (a *HTTPAdapter) handleFilterShow(c *gin.Context) {
	a.run(c, http.StatusOK, command("filter", "show"))
}

func (a *HTTPAdapter) handleFilterToggle(c *gin.Context) {
	var input toggleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	a.run(c, http.StatusOK, command("filter", "toggle", c.Param("domain"), input.Tag))
}

func (a *HTTPAdapter) handleFilterClear(c *gin.Context) {
	a.run(c, http.StatusOK, command("filter", "clear", c.Param("domain")))
}

func (a *HTTPAdapter) handleDrop(c *gin.Context) {
	var req session.DropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a.run(c, http.StatusOK, model.Command{Scope: "drop", Payload: req})
}

// requestFormat picks yaml for yaml content types and json otherwise
func requestFormat(c *gin.Context) storage.Format {
	switch c.ContentType() {
	case "application/yaml", "application/x-yaml", "text/yaml":
		return storage.FormatYAML
	}
	return storage.FormatJSON
}

func (a *HTTPAdapter) handleExport(c *gin.Context) {
	a.run(c, http.StatusOK, command("library", "document"))
}

func (a *HTTPAdapter) handleImport(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		badRequest(c, err)
		return
	}
	doc, err := storage.DecodeDocument(body, requestFormat(c))
	if err != nil {
		badRequest(c, err)
		return
	}
	a.run(c, http.StatusOK, model.Command{Scope: "library", Operation: "import", Payload: doc})
}
