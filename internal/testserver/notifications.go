package testserver

import (
	"net/http"
	"strconv"
	"time"

	"negromart_seller/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	listPath    = "/ws/notifications/"
	counterPath = "/ws/notifications/count/"
)

func (s *Server) snapshotLocked() gin.H {
	list := append([]models.Notification(nil), s.notifications...)
	if list == nil {
		list = []models.Notification{}
	}
	return gin.H{"type": "init_data", "notifications": list, "unread_count": s.unreadLocked()}
}

func (s *Server) unreadLocked() int {
	n := 0
	for _, item := range s.notifications {
		if !item.IsRead {
			n++
		}
	}
	return n
}

// UnreadCount is the server-side number of unread notifications.
func (s *Server) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unreadLocked()
}

// Notification returns the stored notification with id.
func (s *Server) Notification(id int64) (models.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.ID == id {
			return n, true
		}
	}
	return models.Notification{}, false
}

// FailDetail makes the next n detail fetches answer 500.
func (s *Server) FailDetail(n int) {
	s.mu.Lock()
	s.detailFails = n
	s.mu.Unlock()
}

func (s *Server) greet(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch c.path {
	case listPath:
		c.send <- s.snapshotLocked()
	case counterPath:
		c.send <- gin.H{"type": "unread_count", "count": s.unreadLocked()}
	}
}

// AddNotification stores n as a new unread notification and pushes it the
// way the backend does: a toast frame to the list and a fresh count to the bell.
func (s *Server) AddNotification(n models.Notification) models.Notification {
	s.mu.Lock()
	n.ID = s.nextNotifID
	s.nextNotifID++
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	n.IsRead = false
	s.notifications = append([]models.Notification{n}, s.notifications...)
	unread := s.unreadLocked()
	s.mu.Unlock()

	s.hub.broadcast(listPath, gin.H{"type": "notification", "notification": n})
	s.hub.broadcast(counterPath, gin.H{"type": "count_updated", "count": unread, "trigger_toast": true})
	return n
}

// handleAction applies a client action and pushes the new state.
func (s *Server) handleAction(c *client, a Action) {
	s.mu.Lock()
	changed := false
	switch a.Action {
	case "mark_read", "view_detail":
		if a.ID == 0 {
			if id, ok := detailSocketID(c.path); ok {
				a.ID = id
			}
		}
		for i := range s.notifications {
			if s.notifications[i].ID == a.ID && !s.notifications[i].IsRead {
				s.notifications[i].IsRead = true
				changed = true
			}
		}
	case "mark_all_read":
		for i := range s.notifications {
			if !s.notifications[i].IsRead {
				s.notifications[i].IsRead = true
				changed = true
			}
		}
	case "delete":
		for i := range s.notifications {
			if s.notifications[i].ID == a.ID {
				s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
				changed = true
				break
			}
		}
	}
	if !changed {
		s.mu.Unlock()
		return
	}
	snapshot := s.snapshotLocked()
	snapshot["type"] = "refresh_list"
	unread := s.unreadLocked()
	s.mu.Unlock()

	s.hub.broadcast(listPath, snapshot)
	s.hub.broadcast(counterPath, gin.H{"type": "unread_count", "count": unread})
}

func (s *Server) listNotifications(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]models.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if c.Query("is_read") == "false" && n.IsRead {
			continue
		}
		results = append(results, n)
	}
	c.JSON(http.StatusOK, gin.H{
		"count":        len(results),
		"next":         nil,
		"previous":     nil,
		"results":      results,
		"unread_count": s.unreadLocked(),
	})
}

func (s *Server) getNotification(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	s.mu.Lock()
	if s.detailFails > 0 {
		s.detailFails--
		s.mu.Unlock()
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Server error"})
		return
	}
	s.mu.Unlock()

	n, ok := s.Notification(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.JSON(http.StatusOK, n)
}
