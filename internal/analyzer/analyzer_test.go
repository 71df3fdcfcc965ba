package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resume-analyzer-go/internal/constants"
	"resume-analyzer-go/internal/types"
)

// TestAnalyzeEmptyResume 空简历也能产出完整结果：
// 结构/内容/关键词为0，可读性无可扣项得满分，总分为25
func TestAnalyzeEmptyResume(t *testing.T) {
	result := Analyze(&types.ParsedResume{Name: constants.NameNotFound})

	assert.Equal(t, types.ScoreSet{Structure: 0, Content: 0, Keywords: 0, Readability: 100}, result.Scores)
	assert.Equal(t, 25, result.OverallScore)
	assert.Equal(t, "Software Engineer", result.DetectedRole)
	assert.Empty(t, result.Strengths)
	assert.NotEmpty(t, result.Weaknesses)
	assert.NotEmpty(t, result.SkillGaps)
}

// TestAnalyzeDeterministic 同一份输入两次分析结果完全一致
func TestAnalyzeDeterministic(t *testing.T) {
	resume := &types.ParsedResume{
		Name:   "John Smith",
		Email:  "john@example.com",
		Skills: []string{"python", "docker", "aws"},
		WorkExperience: []types.WorkExperience{
			{Company: "Acme", Position: "Engineer", Responsibilities: []string{"a", "b", "c"}},
		},
		RawText: "Developed and maintained services. Improved reliability.",
	}

	first := Analyze(resume)
	second := Analyze(resume)
	assert.Equal(t, first, second)
}

// TestAnalyzeScoreBounds 所有评分都落在[0,100]区间
func TestAnalyzeScoreBounds(t *testing.T) {
	resumes := []*types.ParsedResume{
		{},
		{Name: "A", RawText: "short"},
		{
			Name:           "John Smith",
			Email:          "john@example.com",
			Phone:          "555-123-4567",
			Skills:         []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"},
			Education:      []types.Education{{Institution: "MIT", Degree: "Bachelor", Field: "cs"}},
			WorkExperience: []types.WorkExperience{{Company: "Acme", Position: "Eng", Responsibilities: []string{"a", "b", "c"}}},
			Projects:       []types.Project{{Name: "demo"}},
			RawText:        "manage lead develop implement design optimize improve collaborate analyze create build maintain support",
		},
	}

	for _, resume := range resumes {
		result := Analyze(resume)
		for name, score := range map[string]int{
			"overall":     result.OverallScore,
			"structure":   result.Scores.Structure,
			"content":     result.Scores.Content,
			"keywords":    result.Scores.Keywords,
			"readability": result.Scores.Readability,
		} {
			assert.GreaterOrEqual(t, score, 0, name)
			assert.LessOrEqual(t, score, 100, name)
		}
	}
}

// TestAnalyzeSkillGapsFollowDetectedRole 差距分析使用分析结果中的同一个角色
func TestAnalyzeSkillGapsFollowDetectedRole(t *testing.T) {
	resume := &types.ParsedResume{
		Skills:  []string{"SEO", "Social Media", "Campaign"},
		RawText: "Ran a marketing campaign with strong SEO results.",
	}
	result := Analyze(resume)

	assert.Equal(t, "Marketing", result.DetectedRole)
	// Marketing必备: SEO, Content Marketing, Analytics, Social Media, Email Marketing
	assert.Equal(t, []string{"Content Marketing", "Analytics", "Email Marketing"}, result.SkillGaps)
}
