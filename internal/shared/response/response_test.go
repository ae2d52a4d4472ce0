package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"employee-directory/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.Success(c, http.StatusCreated, "Profile created successfully", gin.H{"id": "42"})

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Profile created successfully", body["message"])
	assert.Equal(t, map[string]any{"id": "42"}, body["data"])
}

func TestError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.Error(c, http.StatusBadRequest, "CONFLICT", "Email already exists", nil)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Email already exists", body["message"])
	assert.Equal(t, "CONFLICT", body["code"])
	assert.NotContains(t, body, "data")
}
