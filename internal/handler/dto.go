package handler

import "github.com/FranksOps/marketscope/internal/model"

type AnalyzeRequest struct {
	Query string `json:"query"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type HistoryResponse struct {
	Reports []*model.Report `json:"reports"`
	Total   int             `json:"total"`
}
