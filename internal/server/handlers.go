package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// validate checks inbound request structs. Shared; Validate is
// concurrency-safe.
var validate = validator.New()

// AnalyzeRequest represents the request body for /analyze.
type AnalyzeRequest struct {
	CompanyName string `json:"company_name" validate:"required"`
}

// AnalyzeResponse represents the success response for /analyze: the raw
// registry record alongside the generated report.
type AnalyzeResponse struct {
	RawData any    `json:"raw_data"`
	Report  string `json:"report"`
}

// handleAnalyze runs the enrichment pipeline for one company name.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "请求中缺少公司名称")
		return
	}

	if err := validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "请求中缺少公司名称")
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req.CompanyName)
	if err != nil {
		s.pipelineErrorResponse(w, req.CompanyName, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{
		RawData: result.Record,
		Report:  result.Report,
	})
}

// pipelineErrorResponse maps a pipeline failure to the response contract.
// Generation failures deliberately return a generic message; the underlying
// error is logged by the pipeline, not surfaced to the client.
func (s *Server) pipelineErrorResponse(w http.ResponseWriter, companyName string, err error) {
	switch classify(err) {
	case failureValidation:
		s.errorResponse(w, http.StatusBadRequest, "公司名称不能为空")
	case failureConfig:
		s.errorResponse(w, http.StatusInternalServerError, "服务器未配置API密钥，请联系管理员。")
	case failureLookup:
		s.errorResponse(w, http.StatusNotFound,
			fmt.Sprintf("未能获取到'%s'的企业信息，请检查公司名称是否正确。", companyName))
	default:
		s.errorResponse(w, http.StatusInternalServerError, "生成分析报告时发生错误，请稍后重试。")
	}
}
