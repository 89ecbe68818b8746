package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/adrianmtzc/campusmatch-backend/internal/delivery/http/middleware"
	"github.com/adrianmtzc/campusmatch-backend/internal/usecase/chat"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatUseCase *chat.ChatUseCase
}

func NewChatHandler(chatUseCase *chat.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

// Send posts a message into a match
// @Summary Send message
// @Tags chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param match_id path string true "Match ID"
// @Param request body chat.SendRequest true "Message"
// @Success 201 {object} chat.SendResult
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /chats/{match_id}/messages [post]
func (h *ChatHandler) Send(c *gin.Context) {
	var req chat.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.chatUseCase.Send(c.Request.Context(), middleware.UserID(c), c.Param("match_id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetMessages fetches messages: newest page by default, or everything after
// ?since=<RFC3339>. Fetching marks the returned unread messages read.
// @Summary Get messages
// @Tags chat
// @Security BearerAuth
// @Produce json
// @Param match_id path string true "Match ID"
// @Param since query string false "RFC3339 timestamp"
// @Param offset query int false "Page offset"
// @Success 200 {array} domain.Message
// @Router /chats/{match_id}/messages [get]
func (h *ChatHandler) GetMessages(c *gin.Context) {
	var since time.Time
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "since must be RFC3339"})
			return
		}
		since = parsed
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, err := h.chatUseCase.GetMessages(c.Request.Context(), middleware.UserID(c), c.Param("match_id"), since, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// Poll blocks until a message newer than since arrives or the timeout passes
// @Summary Long-poll for new messages
// @Tags chat
// @Security BearerAuth
// @Produce json
// @Param match_id path string true "Match ID"
// @Param since query string true "RFC3339 timestamp"
// @Param timeout query int false "Seconds to wait, max 60" default(60)
// @Success 200 {object} chat.PollResult
// @Router /chats/{match_id}/poll [get]
func (h *ChatHandler) Poll(c *gin.Context) {
	since, err := time.Parse(time.RFC3339, c.Query("since"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "since must be RFC3339"})
		return
	}
	timeoutSec, _ := strconv.Atoi(c.DefaultQuery("timeout", "60"))

	result, err := h.chatUseCase.PollMessages(
		c.Request.Context(),
		middleware.UserID(c),
		c.Param("match_id"),
		since,
		time.Duration(timeoutSec)*time.Second,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// MarkRead marks messages read on behalf of their receiver
// @Summary Mark messages read
// @Tags chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /chats/messages/read [post]
func (h *ChatHandler) MarkRead(c *gin.Context) {
	var req struct {
		MessageIDs []string `json:"message_ids" binding:"required,min=1,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	updated, err := h.chatUseCase.MarkRead(c.Request.Context(), middleware.UserID(c), req.MessageIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// GetConversations lists the caller's conversations with unread counts
// @Summary List conversations
// @Tags chat
// @Security BearerAuth
// @Produce json
// @Success 200 {array} chat.Conversation
// @Router /chats [get]
func (h *ChatHandler) GetConversations(c *gin.Context) {
	conversations, err := h.chatUseCase.GetConversations(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversations)
}

// UnreadCount returns the caller's total unread messages
// @Summary Unread count
// @Tags chat
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]int
// @Router /chats/unread-count [get]
func (h *ChatHandler) UnreadCount(c *gin.Context) {
	count, err := h.chatUseCase.UnreadCount(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// SendStudyInvitation proposes a study session inside a chat
// @Summary Send study invitation
// @Tags chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param match_id path string true "Match ID"
// @Param request body chat.StudyInvitationRequest true "Invitation"
// @Success 201 {object} domain.Message
// @Router /chats/{match_id}/study-invitations [post]
func (h *ChatHandler) SendStudyInvitation(c *gin.Context) {
	var req chat.StudyInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	message, err := h.chatUseCase.SendStudyInvitation(c.Request.Context(), middleware.UserID(c), c.Param("match_id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

// RespondStudyInvitation accepts or declines a study invitation
// @Summary Respond to study invitation
// @Tags chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param message_id path string true "Invitation message ID"
// @Success 200 {object} domain.Message
// @Failure 403 {object} ErrorResponse
// @Router /chats/study-invitations/{message_id}/respond [post]
func (h *ChatHandler) RespondStudyInvitation(c *gin.Context) {
	var req struct {
		Accept *bool `json:"accept" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	response, err := h.chatUseCase.RespondStudyInvitation(c.Request.Context(), middleware.UserID(c), c.Param("message_id"), *req.Accept)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}
