package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"AgriBot/models"
	"AgriBot/pkg/index"
	"AgriBot/pkg/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func CreateConversation(db *gorm.DB) gin.HandlerFunc {
	st := store.New(db)
	return func(c *gin.Context) {
		var body struct {
			Language string `json:"language"`
			Title    string `json:"title"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if !models.IsSupportedLanguage(body.Language) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "language must be one of: " + strings.Join(models.SupportedLanguages, ", ")})
			return
		}

		conv, err := st.CreateConversation(body.Language, strings.TrimSpace(body.Title))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create conversation"})
			return
		}
		c.JSON(http.StatusCreated, conversationJSON(*conv))
	}
}

func ListConversations(db *gorm.DB) gin.HandlerFunc {
	st := store.New(db)
	return func(c *gin.Context) {
		convs, err := st.ListConversations()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load conversations"})
			return
		}

		// sidebar search filters the fetched snapshot, never the store
		convs = index.Filter(convs, c.Query("q"))

		result := make([]gin.H, 0, len(convs))
		for _, conv := range convs {
			result = append(result, conversationJSON(conv))
		}
		c.JSON(http.StatusOK, result)
	}
}

func GetMessages(db *gorm.DB) gin.HandlerFunc {
	st := store.New(db)
	return func(c *gin.Context) {
		cid, err := strconv.Atoi(c.Param("conversation_id"))
		if err != nil || cid <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
			return
		}

		msgs, err := st.GetMessages(uint(cid))
		if err != nil {
			if err == store.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
			return
		}

		result := make([]gin.H, 0, len(msgs))
		for _, m := range msgs {
			result = append(result, messageJSON(m))
		}
		c.JSON(http.StatusOK, result)
	}
}

func conversationJSON(conv models.Conversation) gin.H {
	return gin.H{
		"id":               conv.ID,
		"title":            conv.Title,
		"language":         conv.Language,
		"last_activity_at": conv.LastActivityAt,
	}
}

func messageJSON(m models.Message) gin.H {
	out := gin.H{
		"id":              m.ID,
		"conversation_id": m.ConversationID,
		"role":            m.Role,
		"text":            m.Text,
		"timestamp":       m.Timestamp,
	}
	if m.Image != "" {
		out["image"] = m.Image
	}
	return out
}
