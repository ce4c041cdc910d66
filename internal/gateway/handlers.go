package gateway

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// requireUser проверяет заголовок X-Sharer-User-Id до проксирования.
func (g *Gateway) requireUser(c *gin.Context) {
	raw := strings.TrimSpace(c.GetHeader(headerUserID))
	if raw == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": headerUserID + " header is required"})
		return
	}
	if id, err := strconv.ParseInt(raw, 10, 64); err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": headerUserID + " header must be a positive integer"})
		return
	}
	c.Next()
}

type createBookingRequest struct {
	ItemID int64     `json:"item_id" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

func (g *Gateway) createBookingHandler(c *gin.Context) {
	var request createBookingRequest
	body, ok := g.bindAndKeep(c, &request)
	if !ok {
		return
	}
	g.forward(c, body)
}

func (g *Gateway) approveBookingHandler(c *gin.Context) {
	approved := strings.ToLower(strings.TrimSpace(c.Query("approved")))
	if approved != "true" && approved != "false" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved must be true or false"})
		return
	}
	g.forward(c, nil)
}

type createItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
}

func (g *Gateway) createItemHandler(c *gin.Context) {
	var request createItemRequest
	body, ok := g.bindAndKeep(c, &request)
	if !ok {
		return
	}
	g.forward(c, body)
}

type createCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (g *Gateway) createCommentHandler(c *gin.Context) {
	var request createCommentRequest
	body, ok := g.bindAndKeep(c, &request)
	if !ok {
		return
	}
	g.forward(c, body)
}

type createUserRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

func (g *Gateway) createUserHandler(c *gin.Context) {
	var request createUserRequest
	body, ok := g.bindAndKeep(c, &request)
	if !ok {
		return
	}
	g.forward(c, body)
}

type createRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

func (g *Gateway) createRequestHandler(c *gin.Context) {
	var request createRequestRequest
	body, ok := g.bindAndKeep(c, &request)
	if !ok {
		return
	}
	g.forward(c, body)
}

func (g *Gateway) forwardHandler(c *gin.Context) {
	g.forward(c, nil)
}

// bindAndKeep валидирует тело и возвращает исходные байты для проксирования.
func (g *Gateway) bindAndKeep(c *gin.Context, dst any) ([]byte, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read request body"})
		return nil, false
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "validation error",
			"errors": map[string]string{
				"field": "request",
				"error": err.Error(),
			},
		})
		return nil, false
	}
	return body, true
}

// forward проксирует запрос на основной сервер как есть.
func (g *Gateway) forward(c *gin.Context, body []byte) {
	url := g.cfg.ServerURL + c.Request.URL.Path
	if params := c.Request.URL.Query().Encode(); params != "" {
		url += "?" + params
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else if c.Request.Body != nil {
		reader = c.Request.Body
	}

	request, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, url, reader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create request"})
		return
	}

	for _, header := range []string{headerUserID, "Content-Type", "X-Request-Id"} {
		if v := c.GetHeader(header); v != "" {
			request.Header.Set(header, v)
		}
	}

	response, err := g.client.Do(request)
	if err != nil {
		g.logger.Error().Err(err).Str("url", url).Msg("forward request failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to perform request"})
		return
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read the response"})
		return
	}

	c.Data(response.StatusCode, "application/json", data)
}
