package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"market-service/internal/repositories"
	"market-service/internal/ws"
)

// ChatHandler manages buyer-seller chat endpoints.
type ChatHandler struct {
	roomRepo    repositories.RoomRepository
	messageRepo repositories.MessageRepository
	broker      *ws.Broker
}

// NewChatHandler builds a ChatHandler.
func NewChatHandler(roomRepo repositories.RoomRepository, messageRepo repositories.MessageRepository, broker *ws.Broker) *ChatHandler {
	return &ChatHandler{
		roomRepo:    roomRepo,
		messageRepo: messageRepo,
		broker:      broker,
	}
}

// ListRooms returns the rooms visible to the authenticated user with a
// preview of the most recent message and the unread badge count.
func (h *ChatHandler) ListRooms(c *gin.Context) {
	userID := c.GetInt("userID")

	rooms, err := h.roomRepo.ListRoomsForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load rooms"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "rooms": rooms})
}

// StartRoom creates or returns the room between the caller and the seller of
// a product.
func (h *ChatHandler) StartRoom(c *gin.Context) {
	var req struct {
		ProductID int `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetInt("userID")
	room, err := h.roomRepo.CreateOrGetRoom(c.Request.Context(), req.ProductID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not open room"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "room_id": room.ID})
}

// GetRoomMessages returns the room history and clears the caller's unread
// markers. Messages the caller authored are never part of that transition.
func (h *ChatHandler) GetRoomMessages(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("room_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	userID := c.GetInt("userID")
	member, err := h.roomRepo.IsParticipant(c.Request.Context(), roomID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify membership"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a room member"})
		return
	}

	// Viewing the room is what marks the counterpart's messages read. A
	// failure here must not take the history down with it.
	if err := h.messageRepo.MarkRead(c.Request.Context(), roomID, userID); err != nil {
		log.Printf("mark read room %d: %v", roomID, err)
	}

	msgs, err := h.messageRepo.ListMessages(c.Request.Context(), roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "messages": msgs})
}

// PostRoomMessage stores a room message and broadcasts it to live
// subscribers. The message is durable once stored; fan-out is best-effort on
// top of that and never fails the request.
func (h *ChatHandler) PostRoomMessage(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("room_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message body"})
		return
	}

	userID := c.GetInt("userID")
	msg, err := h.messageRepo.CreateMessage(c.Request.Context(), roomID, userID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, repositories.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{"error": "not a room member"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store message"})
		}
		return
	}

	// The head pointer is a read optimization for list previews; a failed
	// update leaves the message durable and still broadcast.
	if err := h.roomRepo.SetRoomHead(c.Request.Context(), roomID, msg.ID); err != nil {
		log.Printf("set room %d head to message %d: %v", roomID, msg.ID, err)
	}

	h.broker.Publish(roomID, msg)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "message": msg})
}
