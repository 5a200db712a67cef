package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arloliu/seating"
)

type resizeRequest struct {
	Seats int `json:"seats"`
}

type reassignRequest struct {
	TableIDs    []string `json:"tableIds"`
	Destination string   `json:"destination"`
}

type chipsRequest struct {
	Chips int64 `json:"chips"`
}

type statusRequest struct {
	Status seating.ParticipantStatus `json:"status"`
}

type placementRequest struct {
	// ParticipantIDs restricts the placement; empty selects the default set.
	ParticipantIDs []string `json:"participantIds"`
}

type moveRequest struct {
	ParticipantID string              `json:"participantId"`
	From          seating.SeatAddress `json:"from"`
	To            seating.SeatAddress `json:"to"`
}

// bind decodes the JSON body into v. An empty body is accepted when optional is set.
func bind(c *gin.Context, v any, optional bool) bool {
	err := c.ShouldBindJSON(v)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "class": seating.ClassInvalid.String()})

	return false
}

func (s *Server) listPartitions(c *gin.Context) {
	out, err := s.engine.Partitions(c.Request.Context(), owner(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createPartition(c *gin.Context) {
	var req seating.Partition
	if !bind(c, &req, false) {
		return
	}
	out, err := s.engine.CreatePartition(c.Request.Context(), owner(c), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (s *Server) reassignPartition(c *gin.Context) {
	var req reassignRequest
	if !bind(c, &req, false) {
		return
	}
	out, err := s.engine.ReassignPartition(c.Request.Context(), scope(c), req.TableIDs, req.Destination)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listTables(c *gin.Context) {
	out, err := s.engine.Tables(c.Request.Context(), scope(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createTable(c *gin.Context) {
	var req seating.TableSpec
	if !bind(c, &req, true) {
		return
	}
	out, err := s.engine.CreateTable(c.Request.Context(), scope(c), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (s *Server) updateTable(c *gin.Context) {
	var req seating.TableUpdate
	if !bind(c, &req, false) {
		return
	}
	out, err := s.engine.UpdateTable(c.Request.Context(), scope(c), c.Param("tid"), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) activateTable(c *gin.Context) {
	out, err := s.engine.ActivateTable(c.Request.Context(), scope(c), c.Param("tid"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) deactivateTable(c *gin.Context) {
	out, err := s.engine.DeactivateTable(c.Request.Context(), scope(c), c.Param("tid"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) resizeTable(c *gin.Context) {
	var req resizeRequest
	if !bind(c, &req, false) {
		return
	}
	out, err := s.engine.ResizeSeats(c.Request.Context(), scope(c), c.Param("tid"), req.Seats)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) closeTable(c *gin.Context) {
	out, err := s.engine.CloseTable(c.Request.Context(), scope(c), c.Param("tid"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) deleteTable(c *gin.Context) {
	out, err := s.engine.DeleteTable(c.Request.Context(), scope(c), c.Param("tid"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listParticipants(c *gin.Context) {
	out, err := s.engine.Participants(c.Request.Context(), scope(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createParticipant(c *gin.Context) {
	var req seating.ParticipantSpec
	if !bind(c, &req, false) {
		return
	}
	out, err := s.engine.CreateParticipant(c.Request.Context(), scope(c), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (s *Server) getParticipant(c *gin.Context) {
	out, err := s.engine.Participant(c.Request.Context(), scope(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) deleteParticipant(c *gin.Context) {
	ref, err := s.engine.DeleteParticipant(c.Request.Context(), scope(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"released": ref})
}

func (s *Server) updateChips(c *gin.Context) {
	var req chipsRequest
	if !bind(c, &req, false) {
		return
	}
	out, err := s.engine.UpdateChips(c.Request.Context(), scope(c), c.Param("id"), req.Chips)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) setStatus(c *gin.Context) {
	var req statusRequest
	if !bind(c, &req, false) {
		return
	}
	out, err := s.engine.SetParticipantStatus(c.Request.Context(), scope(c), c.Param("id"), req.Status)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) bustOut(c *gin.Context) {
	ref, err := s.engine.BustOut(c.Request.Context(), scope(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"released": ref})
}

func (s *Server) rebalance(c *gin.Context) {
	var req placementRequest
	if !bind(c, &req, true) {
		return
	}
	out, err := s.engine.RebalanceAll(c.Request.Context(), scope(c), req.ParticipantIDs)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": out})
}

func (s *Server) fill(c *gin.Context) {
	var req placementRequest
	if !bind(c, &req, true) {
		return
	}
	out, err := s.engine.FillWaiting(c.Request.Context(), scope(c), req.ParticipantIDs)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": out})
}

func (s *Server) draft(c *gin.Context) {
	out, err := s.engine.SnakeDraft(c.Request.Context(), scope(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) move(c *gin.Context) {
	var req moveRequest
	if !bind(c, &req, false) {
		return
	}
	out, err := s.engine.Move(c.Request.Context(), scope(c), req.ParticipantID, req.From, req.To)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": out})
}
