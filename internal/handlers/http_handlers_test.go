package handlers

import (
	"encoding/json"
	"html/template"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Williamwenda/FoodSlotMachine/internal/engine"
	"github.com/Williamwenda/FoodSlotMachine/internal/models"
	"github.com/Williamwenda/FoodSlotMachine/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSlotRouter(t *testing.T) *gin.Engine {
	t.Helper()
	templates, err := template.New("").Funcs(TemplateFuncs()).ParseGlob("../../cmd/slotmachine/templates/*.html")
	require.NoError(t, err)

	service := services.NewSlotService(func(presenter engine.Presenter) *engine.Machine {
		return engine.NewMachine(engine.Config{
			PoolSize: 0,
			Rand:     rand.New(rand.NewPCG(3, 3)),
		}, presenter)
	})
	h := NewHTTPHandler(service, templates)

	r := gin.New()
	h.RegisterPublicRoutes(r)
	tenantRoutes := r.Group("/")
	tenantRoutes.Use(h.TenantMiddleware())
	h.RegisterTenantRoutes(tenantRoutes)
	return r
}

// client keeps the session cookie between requests.
type client struct {
	router http.Handler
	cookie *http.Cookie
}

func (c *client) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == sessionCookie {
			c.cookie = ck
		}
	}
	return w
}

func TestSlotPages_IndexIssuesSession(t *testing.T) {
	c := &client{router: newSlotRouter(t)}

	w := c.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, c.cookie)
	assert.Contains(t, w.Body.String(), "Using Local Data (5 items)")
	assert.Contains(t, w.Body.String(), "1 in 25")

	// The same cookie keeps the same session.
	first := c.cookie.Value
	c.do(http.MethodGet, "/", nil)
	assert.Equal(t, first, c.cookie.Value)
}

func TestSlotPages_Spin(t *testing.T) {
	c := &client{router: newSlotRouter(t)}

	w := c.do(http.MethodPost, "/spin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, strings.Count(w.Body.String(), `class="slot"`))

	w = c.do(http.MethodGet, "/api/spin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var result models.SpinResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, engine.IsJackpot(result.Foods), result.IsJackpot)
	for _, food := range result.Foods {
		assert.Equal(t, models.SourceLocal, food.Source)
	}

	// The last result is rendered on the page.
	w = c.do(http.MethodGet, "/", nil)
	assert.Contains(t, w.Body.String(), result.Foods[0].Name)
}

func TestSlotPages_Status(t *testing.T) {
	c := &client{router: newSlotRouter(t)}

	w := c.do(http.MethodGet, "/api/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status models.Status   `json:"status"`
		Ready  bool            `json:"ready"`
		Pool   models.PoolInfo `json:"pool"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Ready)
	assert.False(t, body.Status.Connected)
	assert.Equal(t, 5, body.Pool.Size)
}

func TestSlotPages_UpdateEndpoint(t *testing.T) {
	catalogSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"name":"Pad Thai"},{"id":2,"name":"Pho"},{"id":3,"name":"Tacos"}]`))
	}))
	defer catalogSrv.Close()

	c := &client{router: newSlotRouter(t)}

	w := c.do(http.MethodPost, "/endpoint", url.Values{"apiEndpoint": {"  "}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do(http.MethodPost, "/endpoint", url.Values{"apiEndpoint": {catalogSrv.URL}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "API Connected (3 items)")

	w = c.do(http.MethodPost, "/spin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "FROM API")
}

func TestSlotPages_Reset(t *testing.T) {
	c := &client{router: newSlotRouter(t)}
	c.do(http.MethodPost, "/spin", nil)

	w := c.do(http.MethodPost, "/reset", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = c.do(http.MethodGet, "/", nil)
	assert.Contains(t, w.Body.String(), "Press spin")
}

func TestRenderStars(t *testing.T) {
	html := string(renderStars(3.5))
	assert.Equal(t, 5, strings.Count(html, `<span class="star`))
	assert.Equal(t, 1, strings.Count(html, "⯨"))
	assert.Equal(t, 1, strings.Count(html, "star empty"))

	html = string(renderStars(4))
	assert.Equal(t, 0, strings.Count(html, "⯨"))
	assert.Equal(t, 1, strings.Count(html, "star empty"))
}
