package controllers

import (
	"errors"
	"net/http"
	"strings"

	"AgriBot/middleware"
	"AgriBot/models"
	"AgriBot/pkg/imaging"
	svc "AgriBot/pkg/services"
	"AgriBot/pkg/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SubmitMessage runs the whole orchestration for one user turn and returns
// the assistant's message. Image preprocessing happens first, before anything
// is persisted or sent anywhere, so an oversized upload costs nothing.
func SubmitMessage(db *gorm.DB) gin.HandlerFunc {
	st := store.New(db)
	chat := svc.NewChatService(st, svc.NewInferenceService())
	return func(c *gin.Context) {
		var body struct {
			ConversationID *uint  `json:"conversation_id"`
			Text           string `json:"text"`
			Image          string `json:"image"`
			Language       string `json:"language"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if !models.IsSupportedLanguage(body.Language) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "language must be one of: " + strings.Join(models.SupportedLanguages, ", ")})
			return
		}

		text := strings.TrimSpace(body.Text)
		if text == "" && body.Image == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a submission needs text or an image"})
			return
		}

		image := ""
		if body.Image != "" {
			processed, err := imaging.PreprocessPayload(body.Image)
			if err != nil {
				switch {
				case errors.Is(err, imaging.ErrFileTooLarge):
					c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
				case errors.Is(err, imaging.ErrInvalidImage):
					c.JSON(http.StatusBadRequest, gin.H{"error": imaging.ErrInvalidImage.Error()})
				default:
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process image"})
				}
				return
			}
			image = processed
		}

		ip := middleware.ClientIP(c)
		if text != "" && !middleware.DuplicateGuard(ip, text) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "duplicate message, please wait before resending"})
			return
		}

		result, err := chat.HandleSubmission(c.Request.Context(), body.ConversationID, text, image, body.Language)
		if err != nil {
			// a failed turn must stay resubmittable; only successful
			// submissions keep their duplicate-window entry
			if text != "" {
				middleware.ForgetDuplicate(ip)
			}
			switch {
			case errors.Is(err, store.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
			case errors.Is(err, svc.ErrEmptySubmission):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, svc.ErrConversationResolution):
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create conversation"})
			case errors.Is(err, svc.ErrInferenceFailed):
				c.JSON(http.StatusInternalServerError, gin.H{"error": "the assistant could not answer, your message was saved"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save message"})
			}
			return
		}

		resp := messageJSON(*result.Reply)
		resp["conversation_id"] = result.ConversationID
		if !result.ReplySaved {
			resp["warning"] = "reply could not be saved; it will be missing after a reload"
		}
		c.JSON(http.StatusOK, resp)
	}
}
