package http

import (
	"net/http"

	"github.com/dkeye/VdoCall/internal/core"
	"github.com/dkeye/VdoCall/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/pion/webrtc/v4"
)

const statusMessage = "VdoCall Signaling Server Running"

type ConnCounter interface {
	Count() int
}

func Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusMessage})
}

func Health(conns ConnCounter, rooms core.RoomManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"connections": conns.Count(),
			"rooms":       rooms.Len(),
		})
	}
}

func ListRooms(rooms core.RoomManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": rooms.List()})
	}
}

// GetRoom never creates the room it is asked about.
func GetRoom(rooms core.RoomManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		room, ok := rooms.Get(domain.RoomID(c.Param("id")))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusOK, room.Info())
	}
}

func ICEServers(servers []webrtc.ICEServer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"iceServers": servers})
	}
}
