package handler

import (
	"context"
	"encoding/json"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analyzer-go/internal/config"
	"resume-analyzer-go/internal/matcher"
	"resume-analyzer-go/internal/types"
)

const sampleText = `John Smith
john.smith@example.com
(555) 123-4567

Experience
Acme Corp - Senior Software Engineer
2019 - 2022
• Developed scalable web services in Go and Python
• Improved API performance by 40%

Skills
JavaScript, Python, Docker; Kubernetes`

// TestAnalyzeText 同步分析路径：解析、分析、匹配一次完成，不依赖任何存储
func TestAnalyzeText(t *testing.T) {
	h := &ResumeHandler{
		matcher: matcher.NewMatcher(6, rand.New(rand.NewSource(42))),
	}

	resp := h.AnalyzeText(context.Background(), sampleText)
	require.NotNil(t, resp)

	assert.Equal(t, "John Smith", resp.Resume.Name)
	assert.Equal(t, "john.smith@example.com", resp.Resume.Email)
	require.NotNil(t, resp.Analysis)
	assert.GreaterOrEqual(t, resp.Analysis.OverallScore, 0)
	assert.LessOrEqual(t, resp.Analysis.OverallScore, 100)
	assert.NotEmpty(t, resp.Matches)
	for _, match := range resp.Matches {
		assert.GreaterOrEqual(t, match.MatchScore, 50)
		assert.LessOrEqual(t, match.MatchScore, 95)
	}
}

// TestAnalyzeTextDeterministicExceptJitter 解析和分析部分完全确定，
// 固定种子时匹配部分也可复现
func TestAnalyzeTextDeterministicExceptJitter(t *testing.T) {
	first := (&ResumeHandler{matcher: matcher.NewMatcher(6, rand.New(rand.NewSource(7)))}).
		AnalyzeText(context.Background(), sampleText)
	second := (&ResumeHandler{matcher: matcher.NewMatcher(6, rand.New(rand.NewSource(7)))}).
		AnalyzeText(context.Background(), sampleText)

	assert.Equal(t, first.Resume, second.Resume)
	assert.Equal(t, first.Analysis, second.Analysis)
	assert.Equal(t, first.Matches, second.Matches)
}

// TestBuildAnalysisReport 分析结果到数据库行的转换与还原
func TestBuildAnalysisReport(t *testing.T) {
	result := &types.AnalysisResult{
		OverallScore: 81,
		Scores:       types.ScoreSet{Structure: 100, Content: 100, Keywords: 23, Readability: 100},
		Strengths:    []string{"Well-structured resume with all essential sections"},
		Weaknesses:   []string{"No projects listed - consider adding relevant work"},
		Suggestions: []types.Suggestion{
			{Section: "Projects", Issue: "No projects section", Recommendation: "Add one", Priority: "medium"},
		},
		SkillGaps:    []string{"Debugging"},
		DetectedRole: "Software Engineer",
	}

	report, err := buildAnalysisReport("sub-uuid-1", result)
	require.NoError(t, err)

	assert.NotEmpty(t, report.ReportID)
	assert.Equal(t, "sub-uuid-1", report.SubmissionUUID)
	assert.Equal(t, 81, report.OverallScore)
	assert.Equal(t, 23, report.KeywordScore)
	assert.Equal(t, "Software Engineer", report.DetectedRole)

	restored, err := analysisResultFromReport(report)
	require.NoError(t, err)
	assert.Equal(t, result.Scores, restored.Scores)
	assert.Equal(t, result.Strengths, restored.Strengths)
	assert.Equal(t, result.Suggestions, restored.Suggestions)
	assert.Equal(t, result.SkillGaps, restored.SkillGaps)
}

// TestNewResumeHandlerStorageRetry 存储调用的重试策略随处理器一起构造
func TestNewResumeHandlerStorageRetry(t *testing.T) {
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	h := NewResumeHandler(cfg, nil, nil, matcher.NewMatcher(6, rand.New(rand.NewSource(1))))
	require.NotNil(t, h.storageRetry)
	assert.True(t, h.storageRetry.Allow())
}

// TestResumeUploadResponseJSON 响应体字段名稳定，是对外契约的一部分
func TestResumeUploadResponseJSON(t *testing.T) {
	data, err := json.Marshal(ResumeUploadResponse{SubmissionUUID: "u1", Status: "SUBMITTED"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"submission_uuid":"u1","status":"SUBMITTED"}`, string(data))
}
