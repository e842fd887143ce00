package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/Williamwenda/FoodSlotMachine/internal/catalog"
	"github.com/Williamwenda/FoodSlotMachine/internal/engine"
	"github.com/Williamwenda/FoodSlotMachine/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
	"github.com/google/uuid"
)

const (
	sessionCookie = "slot_session"
	tenantKey     = "tenantID"
)

// HTTPHandler holds the dependencies for the slot machine pages.
type HTTPHandler struct {
	service   *services.SlotService
	templates *template.Template
}

// NewHTTPHandler creates a new HTTPHandler.
func NewHTTPHandler(service *services.SlotService, templates *template.Template) *HTTPHandler {
	return &HTTPHandler{
		service:   service,
		templates: templates,
	}
}

// renderPage is a helper to perform a two-step template rendering.
// It first executes the content template into a buffer, then executes the main
// layout template, passing the rendered content as a variable.
func (h *HTTPHandler) renderPage(c *gin.Context, pageData gin.H, contentTmpl string) {
	buf := new(bytes.Buffer)
	err := h.templates.ExecuteTemplate(buf, contentTmpl, pageData)
	if err != nil {
		logger.Infof("Error executing content template %s: %v", contentTmpl, err)
		c.String(http.StatusInternalServerError, "Template rendering error")
		return
	}

	pageData["PageContent"] = template.HTML(buf.String())

	c.Header("Content-Type", "text/html; charset=utf-8")
	err = h.templates.ExecuteTemplate(c.Writer, "layout.html", pageData)
	if err != nil {
		logger.Infof("Error executing layout template: %v", err)
		c.String(http.StatusInternalServerError, "Template rendering error")
	}
}

// renderPartial executes a single template, for HTMX swaps.
func (h *HTTPHandler) renderPartial(c *gin.Context, status int, name string, data any) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := h.templates.ExecuteTemplate(c.Writer, name, data); err != nil {
		logger.Infof("Error executing template %s: %v", name, err)
		c.String(http.StatusInternalServerError, "Template error")
	}
}

// RegisterPublicRoutes registers routes that need no session.
func (h *HTTPHandler) RegisterPublicRoutes(router *gin.Engine) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": h.service.SessionCount()})
	})
}

// RegisterTenantRoutes registers the routes that act on the caller's machine.
func (h *HTTPHandler) RegisterTenantRoutes(router gin.IRoutes) {
	router.GET("/", h.ShowIndex)
	router.POST("/spin", h.PerformSpin)
	router.POST("/endpoint", h.UpdateEndpoint)
	router.POST("/reset", h.ResetSession)
	router.GET("/api/spin", h.SpinJSON)
	router.GET("/api/status", h.StatusJSON)
}

// TenantMiddleware identifies the caller by a session cookie, issuing a new
// one on the first visit.
func (h *HTTPHandler) TenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, err := c.Cookie(sessionCookie)
		if err != nil || uuid.Validate(tenantID) != nil {
			tenantID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, tenantID, 0, "/", "", false, true)
		}
		c.Set(tenantKey, tenantID)
		c.Next()
	}
}

func tenantID(c *gin.Context) string {
	return c.GetString(tenantKey)
}

// ShowIndex renders the slot machine.
func (h *HTTPHandler) ShowIndex(c *gin.Context) {
	view := h.service.Session(c.Request.Context(), tenantID(c))
	h.renderPage(c, gin.H{
		"title": "Food Slot Machine",
		"View":  view,
	}, "index.html")
}

// PerformSpin spins the machine and returns the result partial. A spin that
// arrives while another one is running gets an empty 204.
func (h *HTTPHandler) PerformSpin(c *gin.Context) {
	result, err := h.service.Spin(c.Request.Context(), tenantID(c))
	switch {
	case errors.Is(err, engine.ErrSpinInProgress):
		c.Status(http.StatusNoContent)
		return
	case err != nil:
		h.renderPartial(c, spinErrorStatus(err), "spin_error.html", gin.H{"Error": err.Error()})
		return
	}
	h.renderPartial(c, http.StatusOK, "spin_result.html", gin.H{"Result": result})
}

// UpdateEndpoint switches the catalog endpoint and returns the status partial.
func (h *HTTPHandler) UpdateEndpoint(c *gin.Context) {
	view, err := h.service.SetEndpoint(c.Request.Context(), tenantID(c), c.PostForm("apiEndpoint"))
	if errors.Is(err, engine.ErrEmptyEndpoint) {
		c.String(http.StatusBadRequest, "Please enter a valid API endpoint!")
		return
	}
	h.renderPartial(c, http.StatusOK, "status.html", gin.H{"View": view})
}

// ResetSession drops the caller's machine; the next request builds a new one.
func (h *HTTPHandler) ResetSession(c *gin.Context) {
	h.service.ClearSession(tenantID(c))
	c.Redirect(http.StatusSeeOther, "/")
}

// SpinJSON spins and returns the result as JSON.
func (h *HTTPHandler) SpinJSON(c *gin.Context) {
	result, err := h.service.Spin(c.Request.Context(), tenantID(c))
	switch {
	case errors.Is(err, engine.ErrSpinInProgress):
		c.Status(http.StatusNoContent)
	case err != nil:
		c.JSON(spinErrorStatus(err), gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, result)
	}
}

// StatusJSON returns the catalog status and pool odds as JSON.
func (h *HTTPHandler) StatusJSON(c *gin.Context) {
	view := h.service.Session(c.Request.Context(), tenantID(c))
	body := gin.H{
		"status":   view.Status,
		"ready":    view.Ready,
		"endpoint": view.Endpoint,
	}
	if view.Ready {
		body["pool"] = view.Pool
	}
	if view.Err != nil {
		body["error"] = view.Err.Error()
	}
	c.JSON(http.StatusOK, body)
}

func spinErrorStatus(err error) int {
	if errors.Is(err, catalog.ErrInsufficientPool) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
