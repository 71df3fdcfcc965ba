package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"resume-analyzer-go/internal/logger"
	"resume-analyzer-go/internal/storage"
	"resume-analyzer-go/internal/storage/models"
	"resume-analyzer-go/internal/types"
)

// SubmissionStatusResponse 提交状态查询响应
type SubmissionStatusResponse struct {
	SubmissionUUID   string `json:"submission_uuid"`
	OriginalFilename string `json:"original_filename"`
	SourceChannel    string `json:"source_channel"`
	ProcessingStatus string `json:"processing_status"`
	SubmittedAt      string `json:"submitted_at"`
}

// GetSubmissionStatus 查询一次提交的处理状态
func (h *ResumeHandler) GetSubmissionStatus(ctx context.Context, submissionUUID string) (*SubmissionStatusResponse, error) {
	submission, err := h.storage.MySQL.GetResumeSubmission(ctx, submissionUUID)
	if err != nil {
		return nil, err
	}
	return &SubmissionStatusResponse{
		SubmissionUUID:   submission.SubmissionUUID,
		OriginalFilename: submission.OriginalFilename,
		SourceChannel:    submission.SourceChannel,
		ProcessingStatus: submission.ProcessingStatus,
		SubmittedAt:      submission.SubmissionTimestamp.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}

// GetParsedResume 取回结构化解析结果，优先读Redis缓存，未命中回源MySQL
func (h *ResumeHandler) GetParsedResume(ctx context.Context, submissionUUID string) (*types.ParsedResume, error) {
	if h.storage.Redis != nil {
		resume, err := h.storage.Redis.GetCachedParsedResume(ctx, submissionUUID)
		if err == nil {
			return resume, nil
		}
		if err != storage.ErrNotFound {
			logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("读取解析结果缓存失败，回源MySQL")
		}
	}

	submission, err := h.storage.MySQL.GetResumeSubmission(ctx, submissionUUID)
	if err != nil {
		return nil, err
	}
	if len(submission.ParsedResumeJSON) == 0 {
		return nil, fmt.Errorf("提交 %s 尚未完成解析, 状态: %s", submissionUUID, submission.ProcessingStatus)
	}

	var resume types.ParsedResume
	if err := json.Unmarshal(submission.ParsedResumeJSON, &resume); err != nil {
		return nil, fmt.Errorf("反序列化解析结果失败: %w", err)
	}

	if h.storage.Redis != nil {
		if err := h.storage.Redis.CacheParsedResume(ctx, submissionUUID, &resume); err != nil {
			logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("回填解析结果缓存失败")
		}
	}
	return &resume, nil
}

// GetAnalysisResult 取回分析结果，优先读Redis缓存，未命中回源MySQL
func (h *ResumeHandler) GetAnalysisResult(ctx context.Context, submissionUUID string) (*types.AnalysisResult, error) {
	if h.storage.Redis != nil {
		result, err := h.storage.Redis.GetCachedAnalysisResult(ctx, submissionUUID)
		if err == nil {
			return result, nil
		}
		if err != storage.ErrNotFound {
			logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("读取分析结果缓存失败，回源MySQL")
		}
	}

	report, err := h.storage.MySQL.GetAnalysisReport(ctx, submissionUUID)
	if err != nil {
		return nil, err
	}

	result, err := analysisResultFromReport(report)
	if err != nil {
		return nil, err
	}

	if h.storage.Redis != nil {
		if err := h.storage.Redis.CacheAnalysisResult(ctx, submissionUUID, result); err != nil {
			logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("回填分析结果缓存失败")
		}
	}
	return result, nil
}

// GetJobMatches 取回岗位匹配结果，优先读Redis缓存，未命中回源MySQL
func (h *ResumeHandler) GetJobMatches(ctx context.Context, submissionUUID string) ([]types.JobMatch, error) {
	if h.storage.Redis != nil {
		matches, err := h.storage.Redis.GetCachedJobMatches(ctx, submissionUUID)
		if err == nil {
			return matches, nil
		}
		if err != storage.ErrNotFound {
			logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("读取岗位匹配缓存失败，回源MySQL")
		}
	}

	records, err := h.storage.MySQL.GetJobMatches(ctx, submissionUUID)
	if err != nil {
		return nil, err
	}

	matches := make([]types.JobMatch, 0, len(records))
	for _, record := range records {
		var keywords []string
		if len(record.KeywordsJSON) > 0 {
			if err := json.Unmarshal(record.KeywordsJSON, &keywords); err != nil {
				return nil, fmt.Errorf("反序列化岗位关键词失败 match_id=%d: %w", record.MatchID, err)
			}
		}
		matches = append(matches, types.JobMatch{
			Title:      record.Title,
			Level:      record.Level,
			Keywords:   keywords,
			SearchURL:  record.SearchURL,
			MatchScore: record.MatchScore,
		})
	}

	if h.storage.Redis != nil && len(matches) > 0 {
		if err := h.storage.Redis.CacheJobMatches(ctx, submissionUUID, matches); err != nil {
			logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("回填岗位匹配缓存失败")
		}
	}
	return matches, nil
}

// analysisResultFromReport 把数据库行还原成分析结果
func analysisResultFromReport(report *models.AnalysisReport) (*types.AnalysisResult, error) {
	result := &types.AnalysisResult{
		OverallScore: report.OverallScore,
		Scores: types.ScoreSet{
			Structure:   report.StructureScore,
			Content:     report.ContentScore,
			Keywords:    report.KeywordScore,
			Readability: report.ReadabilityScore,
		},
		DetectedRole: report.DetectedRole,
	}

	fields := []struct {
		name string
		data []byte
		out  interface{}
	}{
		{"strengths", report.StrengthsJSON, &result.Strengths},
		{"weaknesses", report.WeaknessesJSON, &result.Weaknesses},
		{"suggestions", report.SuggestionsJSON, &result.Suggestions},
		{"skill_gaps", report.SkillGapsJSON, &result.SkillGaps},
	}
	for _, f := range fields {
		if len(f.data) == 0 {
			continue
		}
		if err := json.Unmarshal(f.data, f.out); err != nil {
			return nil, fmt.Errorf("反序列化分析报告字段 %s 失败: %w", f.name, err)
		}
	}
	return result, nil
}
