package conversation

import (
	"AgriBot/controllers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Register registers conversation browsing routes.
func Register(r *gin.Engine, db *gorm.DB) {
	r.POST("/conversations", controllers.CreateConversation(db))
	r.GET("/conversations", controllers.ListConversations(db))
	r.GET("/conversations/:conversation_id/messages", controllers.GetMessages(db))
}
