package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemHandler_Ping(t *testing.T) {
	h := NewSystemHandler()
	router := gin.New()
	router.GET("/ping", h.Ping)

	w := doRequest(router, "GET", "/ping", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeData[PingResponse](t, w)
	assert.Equal(t, "pong", resp.Message)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	h := NewSystemHandler()
	router := gin.New()
	router.GET("/info", h.GetSystemInfo)

	w := doRequest(router, "GET", "/info", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeData[SystemInfoResponse](t, w)
	assert.Equal(t, "Duka Backend API", resp.Name)
	assert.NotEmpty(t, resp.GoVersion)
}
