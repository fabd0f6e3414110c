package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wellnessdiary/api/internal/common"
	"github.com/wellnessdiary/api/internal/server/models"
	"github.com/wellnessdiary/api/internal/server/services"
)

// createEntryRequest uses pointers for the required numeric fields so that
// an explicit zero survives the "required" check.
type createEntryRequest struct {
	Date           *time.Time  `json:"date"`
	CaloriesIntake *int        `json:"caloriesIntake" binding:"required,gte=0"`
	EnergyLevel    *int        `json:"energyLevel" binding:"required,min=1,max=10"`
	VitaminsTaken  *bool       `json:"vitaminsTaken" binding:"required"`
	Mood           models.Mood `json:"mood" binding:"required,oneof=happy sad neutral anxious excited tired"`
	ExerciseTime   *int        `json:"exerciseTime" binding:"required,gte=0"`
	SleepQuality   *int        `json:"sleepQuality" binding:"required,min=1,max=10"`
	WaterIntake    *float64    `json:"waterIntake" binding:"omitempty,gte=0"`
	Notes          *string     `json:"notes" binding:"omitempty,max=500"`
	WalkTime       *int        `json:"walkTime" binding:"omitempty,gte=0"`
	StressLevel    *int        `json:"stressLevel" binding:"omitempty,min=1,max=10"`
}

type updateEntryRequest struct {
	Date           *time.Time   `json:"date"`
	CaloriesIntake *int         `json:"caloriesIntake" binding:"omitempty,gte=0"`
	EnergyLevel    *int         `json:"energyLevel" binding:"omitempty,min=1,max=10"`
	VitaminsTaken  *bool        `json:"vitaminsTaken"`
	Mood           *models.Mood `json:"mood" binding:"omitempty,oneof=happy sad neutral anxious excited tired"`
	ExerciseTime   *int         `json:"exerciseTime" binding:"omitempty,gte=0"`
	SleepQuality   *int         `json:"sleepQuality" binding:"omitempty,min=1,max=10"`
	WaterIntake    *float64     `json:"waterIntake" binding:"omitempty,gte=0"`
	Notes          *string      `json:"notes" binding:"omitempty,max=500"`
	WalkTime       *int         `json:"walkTime" binding:"omitempty,gte=0"`
	StressLevel    *int         `json:"stressLevel" binding:"omitempty,min=1,max=10"`
}

// entryID validates the path parameter before it reaches the database.
func entryID(c *gin.Context) (string, error) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: invalid entry id", common.ErrorValidation)
	}
	return id, nil
}

func (s *Server) listEntries(c *gin.Context) {
	result, count, err := s.entries.List(c.Request.Context(), currentUser(c).ID, c.Request.URL.Query())
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	// An empty page still serializes as data: [].
	if result == nil {
		result = []*models.DiaryEntry{}
	}

	c.JSON(http.StatusOK, response{Success: true, Count: &count, Data: result})
}

func (s *Server) getEntry(c *gin.Context) {
	id, err := entryID(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	entry, err := s.entries.GetByID(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response{Success: true, Data: entry})
}

func (s *Server) createEntry(c *gin.Context) {
	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, fmt.Errorf("%w: %v", common.ErrorValidation, err))
		return
	}

	entry := &models.DiaryEntry{
		CaloriesIntake: *req.CaloriesIntake,
		EnergyLevel:    *req.EnergyLevel,
		VitaminsTaken:  *req.VitaminsTaken,
		Mood:           req.Mood,
		ExerciseTime:   *req.ExerciseTime,
		SleepQuality:   *req.SleepQuality,
		WaterIntake:    req.WaterIntake,
		Notes:          req.Notes,
		StressLevel:    req.StressLevel,
	}
	if req.Date != nil {
		entry.Date = *req.Date
	}
	if req.WalkTime != nil {
		entry.WalkTime = *req.WalkTime
	}

	entry, err := s.entries.Create(c.Request.Context(), currentUser(c).ID, entry)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response{
		Success: true,
		Message: "Diary entry created successfully",
		Data:    entry,
	})
}

func (s *Server) updateEntry(c *gin.Context) {
	id, err := entryID(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	var req updateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, fmt.Errorf("%w: %v", common.ErrorValidation, err))
		return
	}

	upd := &services.EntryUpdate{
		Date:           req.Date,
		CaloriesIntake: req.CaloriesIntake,
		EnergyLevel:    req.EnergyLevel,
		VitaminsTaken:  req.VitaminsTaken,
		Mood:           req.Mood,
		ExerciseTime:   req.ExerciseTime,
		SleepQuality:   req.SleepQuality,
		WaterIntake:    req.WaterIntake,
		Notes:          req.Notes,
		WalkTime:       req.WalkTime,
		StressLevel:    req.StressLevel,
	}

	entry, err := s.entries.Update(c.Request.Context(), currentUser(c).ID, id, upd)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response{
		Success: true,
		Message: "Diary entry updated successfully",
		Data:    entry,
	})
}

func (s *Server) deleteEntry(c *gin.Context) {
	id, err := entryID(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	if err := s.entries.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response{Success: true, Message: "Diary entry deleted successfully"})
}
