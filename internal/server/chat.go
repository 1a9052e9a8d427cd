package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Chat answers a client-held transcript in character.
func (s *Server) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	d, err := s.catalog.Detail(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.fail(c, err, "Failed to fetch pokemon")
		return
	}

	reply := s.responder.Respond(c.Request.Context(), req.Messages, d)
	c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}

func (s *Server) StartSession(c *gin.Context) {
	d, err := s.catalog.Detail(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.fail(c, err, "Failed to fetch pokemon")
		return
	}

	id, messages := s.sessions.Start(d)
	c.JSON(http.StatusCreated, SessionResponse{ID: id, Pokemon: d.Name, Messages: messages})
}

func (s *Server) GetSession(c *gin.Context) {
	messages, err := s.sessions.Transcript(c.Param("id"))
	if err != nil {
		s.fail(c, err, "Failed to load chat session")
		return
	}
	c.JSON(http.StatusOK, SessionResponse{ID: c.Param("id"), Messages: messages})
}

func (s *Server) AppendMessage(c *gin.Context) {
	var req AppendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	reply, messages, err := s.sessions.Append(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		s.fail(c, err, "Failed to send message")
		return
	}
	c.JSON(http.StatusOK, AppendMessageResponse{Reply: reply, Messages: messages})
}

func (s *Server) EndSession(c *gin.Context) {
	if err := s.sessions.End(c.Param("id")); err != nil {
		s.fail(c, err, "Failed to end chat session")
		return
	}
	c.Status(http.StatusNoContent)
}
