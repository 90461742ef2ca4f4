package mockapi

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/five82/carview/internal/carapi"
)

// Options configures the mock API.
type Options struct {
	APIKey       string        // required on every /api request when set
	APIKeyHeader string        // empty uses carapi.DefaultAPIKeyHeader
	Bare         bool          // answer with bare arrays and objects instead of envelopes
	Delay        time.Duration // added before every /api response
	Seed         bool          // start with sample cars
	Logger       *zap.Logger
	Now          func() time.Time // nil uses time.Now; bounds the model year
}

// Handler serves the cars REST contract from a Store.
type Handler struct {
	store     *Store
	validator *carapi.Validator
	logger    *zap.Logger
	opts      Options
}

// errorResponse is the body of every failure, in both response modes.
type errorResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// NewHandler creates a handler over store.
func NewHandler(store *Store, opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(opts.APIKeyHeader) == "" {
		opts.APIKeyHeader = carapi.DefaultAPIKeyHeader
	}
	return &Handler{
		store:     store,
		validator: carapi.NewValidator(opts.Now),
		logger:    logger,
		opts:      opts,
	}
}

// RegisterRoutes registers the car routes on the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.Use(h.requireAPIKey, h.delay)
	rg.GET("/cars", h.List)
	rg.GET("/cars/:id", h.Get)
	rg.POST("/cars", h.Create)
	rg.DELETE("/cars/:id", h.Delete)
}

func (h *Handler) requireAPIKey(c *gin.Context) {
	if h.opts.APIKey == "" {
		c.Next()
		return
	}
	if c.GetHeader(h.opts.APIKeyHeader) != h.opts.APIKey {
		h.logger.Warn("Rejected request without a valid API key",
			zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{
			Error: "invalid or missing API key",
		})
		return
	}
	c.Next()
}

func (h *Handler) delay(c *gin.Context) {
	if h.opts.Delay <= 0 {
		c.Next()
		return
	}
	timer := time.NewTimer(h.opts.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		c.Next()
	case <-c.Request.Context().Done():
		c.Abort()
	}
}

// respond writes data as an envelope, or bare in bare mode.
func (h *Handler) respond(c *gin.Context, status int, data any, message string) {
	if h.opts.Bare {
		c.JSON(status, data)
		return
	}
	c.JSON(status, envelope{Success: true, Data: data, Message: message})
}

// List handles GET /api/cars.
func (h *Handler) List(c *gin.Context) {
	h.respond(c, http.StatusOK, h.store.List(), "")
}

// Get handles GET /api/cars/:id.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	car, ok := h.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "car not found"})
		return
	}
	h.respond(c, http.StatusOK, car, "")
}

// Create handles POST /api/cars.
func (h *Handler) Create(c *gin.Context) {
	var req carapi.NewCar
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid create request", zap.Error(err))
		msg := "invalid JSON body"
		if errors.Is(err, io.EOF) {
			msg = "request body is empty"
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
		return
	}

	if err := h.validator.ValidateNewCar(req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "validation failed",
			Details: carapi.FieldErrors(err),
		})
		return
	}

	car := h.store.Create(req)
	h.logger.Info("Car created", zap.String("id", car.ID))
	h.respond(c, http.StatusCreated, car, "car created")
}

// Delete handles DELETE /api/cars/:id.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !h.store.Delete(id) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "car not found"})
		return
	}
	h.logger.Info("Car deleted", zap.String("id", id))
	if h.opts.Bare {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, envelope{Success: true, Message: "car deleted"})
}
