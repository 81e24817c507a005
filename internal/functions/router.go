package functions

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"novel/internal/catalog"
	"novel/internal/savegame"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// NewRouter builds the callable HTTP surface. accessLog receives gin's
// request log; nil disables it.
func NewRouter(svc *Service, accessLog io.Writer) *gin.Engine {
	h := NewHandler(svc)

	r := gin.New()
	r.Use(requestID())
	if accessLog != nil {
		r.Use(gin.LoggerWithWriter(accessLog))
	}
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/"+catalog.FuncGetScenario, h.getScenario)
	r.POST("/"+catalog.FuncGetCharacters, h.getCharacters)
	r.POST("/"+savegame.FuncSaveGame, h.saveGame)
	r.POST("/"+savegame.FuncLoadGame, h.loadGame)
	return r
}

// requestID tags each request with an id, reusing the caller's if sent.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
