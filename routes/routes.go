package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	chatRoutes "AgriBot/routes/chat"
	convRoutes "AgriBot/routes/conversation"
	metaRoutes "AgriBot/routes/meta"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "AgriBot backend running"})
	})

	metaRoutes.Register(r)
	convRoutes.Register(r, db)
	chatRoutes.Register(r, db)
}
