package controllers

import (
	"net/http"

	"AgriBot/models"

	"github.com/gin-gonic/gin"
)

// starter prompts and follow-up chips shown by the web client
var (
	suggestions = []string{
		"Tomato pest control?",
		"Best fertilizer for Wheat?",
		"Identify this plant disease",
	}
	actionChips = []gin.H{
		{"label": "Organic Solution", "value": "Give me organic/desi solutions for this."},
		{"label": "Chemical Solution", "value": "What are the chemical pesticides for this?"},
		{"label": "Market Price", "value": "What is the approximate market price for the medicine?"},
	}
)

func ListLanguages() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"languages": models.SupportedLanguages})
	}
}

func ListSuggestions() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"suggestions":  suggestions,
			"action_chips": actionChips,
		})
	}
}
