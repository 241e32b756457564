package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/stemsi/roster/internal/model"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	Setup()
	m.Run()
}

func jsonContext(body string) *gin.Context {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindValid(t *testing.T) {
	var req model.DeleteStudentRequest
	fields := Bind(jsonContext(`{"position": 2, "view": ["a","b","c"], "confirm": true}`), &req)

	assert.Nil(t, fields)
	if assert.NotNil(t, req.Position) {
		assert.Equal(t, 2, *req.Position)
	}
	assert.True(t, req.Confirm)
}

func TestBindTranslatesFieldErrors(t *testing.T) {
	var req model.DeleteStudentRequest
	fields := Bind(jsonContext(`{"position": -5}`), &req)

	assert.Contains(t, fields, "position")
	assert.Contains(t, fields["position"], "-1")
}

func TestBindRequiredPointer(t *testing.T) {
	var req model.ResetRosterRequest
	fields := Bind(jsonContext(`{}`), &req)
	assert.Contains(t, fields, "confirm")
}

func TestBindSyntaxErrorUsesDetail(t *testing.T) {
	var req model.AddStudentRequest
	fields := Bind(jsonContext(`{"id":`), &req)
	assert.Contains(t, fields, "detail")
}

func TestBindWrongTypeUsesDetail(t *testing.T) {
	var req model.AddStudentRequest
	fields := Bind(jsonContext(`{"age": 20}`), &req)
	assert.Contains(t, fields, "detail")
}

func TestBindQuery(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/?q="+strings.Repeat("a", 300), nil)

	var q model.SearchQuery
	fields := BindQuery(c, &q)
	assert.Contains(t, fields, "q")
}
