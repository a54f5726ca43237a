package chat

import (
	"AgriBot/controllers"
	"AgriBot/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Register registers the submission route. Rate limiting applies only here:
// this is the one endpoint that reaches the inference gateway.
func Register(r *gin.Engine, db *gorm.DB) {
	r.POST("/messages", middleware.RateLimit(), controllers.SubmitMessage(db))
}
