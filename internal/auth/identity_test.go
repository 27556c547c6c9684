package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFromHeaders(t *testing.T) {
	h := http.Header{}
	_, ok := FromHeaders(h)
	assert.False(t, ok)

	h.Set(HeaderUserID, "abc")
	_, ok = FromHeaders(h)
	assert.False(t, ok)

	h.Set(HeaderUserID, "0")
	_, ok = FromHeaders(h)
	assert.False(t, ok)

	h.Set(HeaderUserID, " 42 ")
	id, ok := FromHeaders(h)
	assert.True(t, ok)
	assert.Equal(t, Identity{UserID: 42, Role: "user"}, id)

	h.Set(HeaderUserRole, "Recruiter")
	id, _ = FromHeaders(h)
	assert.Equal(t, models.RoleRecruiter, id.Role)
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireUser(), func(c *gin.Context) {
		id, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": id.UserID})
	})
	r.GET("/recruiter", RequireUser(), RequireRole("recruiter"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path, userID, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if userID != "" {
		req.Header.Set(HeaderUserID, userID)
	}
	if role != "" {
		req.Header.Set(HeaderUserRole, role)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireUser(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "", "").Code)

	w := do(r, "/me", "7", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusUnauthorized, do(r, "/recruiter", "", "recruiter").Code)
	assert.Equal(t, http.StatusForbidden, do(r, "/recruiter", "7", "user").Code)
	assert.Equal(t, http.StatusNoContent, do(r, "/recruiter", "7", "recruiter").Code)
}
