package handler

import (
	"Viralize/internal/api/dto"
	"Viralize/internal/pkg/response"
	"Viralize/internal/service"

	"github.com/gin-gonic/gin"
)

type PredictHandler struct {
	predictionSvc service.PredictionService
}

func NewPredictHandler(predictionSvc service.PredictionService) *PredictHandler {
	return &PredictHandler{
		predictionSvc: predictionSvc,
	}
}

// Predict 提交帖子文本，返回病毒传播力预测
func (s *PredictHandler) Predict(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var predictDTO dto.PredictRequestDTO
	err := c.ShouldBindJSON(&predictDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := s.predictionSvc.Predict(c.Request.Context(), userID, predictDTO.PostText)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetUsage 查询当日配额使用情况
func (s *PredictHandler) GetUsage(c *gin.Context) {
	userID := c.GetUint64("user_id")
	usage, err := s.predictionSvc.GetUsage(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, usage)
}

// GetHistory 分页查询历史预测
func (s *PredictHandler) GetHistory(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var queryDTO dto.HistoryQueryDTO
	err := c.ShouldBindQuery(&queryDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	history, err := s.predictionSvc.GetHistory(c.Request.Context(), userID, &queryDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, history)
}

// GetStats 查询历史统计
func (s *PredictHandler) GetStats(c *gin.Context) {
	userID := c.GetUint64("user_id")
	stats, err := s.predictionSvc.GetStats(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
