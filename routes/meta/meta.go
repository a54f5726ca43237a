package meta

import (
	"AgriBot/controllers"

	"github.com/gin-gonic/gin"
)

// Register registers static lookup routes used by the UI.
func Register(r *gin.Engine) {
	r.GET("/languages", controllers.ListLanguages())
	r.GET("/suggestions", controllers.ListSuggestions())
}
