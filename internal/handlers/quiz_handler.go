package handlers

import (
	"context"
	"net/http"

	"quiz-platform/internal/auth"
	"quiz-platform/internal/scoring"
	"quiz-platform/internal/service"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	Service *service.QuizService
	History *service.HistoryService
}

func NewQuizHandler(s *service.QuizService, history *service.HistoryService) *QuizHandler {
	return &QuizHandler{Service: s, History: history}
}

func (h *QuizHandler) StartQuiz(c *gin.Context) {
	var in service.StartQuizInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	response, err := h.Service.StartQuiz(context.Background(), auth.UserID(c), in)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	var req struct {
		Answers []scoring.SubmittedAnswer `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid answer format",
			"details": err.Error(),
		})
		return
	}

	result, err := h.Service.SubmitQuiz(context.Background(), auth.UserID(c), c.Param("id"), req.Answers)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *QuizHandler) GetAttempt(c *gin.Context) {
	view, err := h.Service.GetAttempt(context.Background(), auth.UserID(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *QuizHandler) GetHistory(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryLimit(c, 10)

	history, err := h.History.GetUserHistory(context.Background(), auth.UserID(c), page, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
