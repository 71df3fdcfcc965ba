package matcher

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analyzer-go/internal/types"
)

// softwareResume 一份典型的工程师简历，会同时命中角色变体和技术栈匹配
func softwareResume() *types.ParsedResume {
	return &types.ParsedResume{
		Name:   "John Smith",
		Skills: []string{"javascript", "python", "react", "node.js", "aws", "docker", "kubernetes", "git"},
		WorkExperience: []types.WorkExperience{
			{Company: "Acme", Position: "Engineer"},
		},
		RawText: "Software engineer with javascript, python, react and aws experience.",
	}
}

// TestGenerateMatchesReproducible 固定种子下两次生成的结果完全一致
func TestGenerateMatchesReproducible(t *testing.T) {
	resume := softwareResume()

	first := NewMatcher(6, rand.New(rand.NewSource(42))).GenerateMatches(resume)
	second := NewMatcher(6, rand.New(rand.NewSource(42))).GenerateMatches(resume)

	assert.Equal(t, first, second)
}

// TestGenerateMatchesShape 验证匹配结果的数量上限、分数区间和排序
func TestGenerateMatchesShape(t *testing.T) {
	matches := NewMatcher(6, rand.New(rand.NewSource(1))).GenerateMatches(softwareResume())
	require.Len(t, matches, 6)

	for i, match := range matches {
		assert.GreaterOrEqual(t, match.MatchScore, 50, "match[%d]", i)
		assert.LessOrEqual(t, match.MatchScore, 95, "match[%d]", i)
		assert.LessOrEqual(t, len(match.Keywords), 6, "match[%d]", i)
		assert.True(t, strings.HasPrefix(match.Title, match.Level), "标题应以级别开头: %s", match.Title)
		assert.True(t, strings.HasPrefix(match.SearchURL, jobSearchBaseURL), "match[%d]", i)
		if i > 0 {
			assert.GreaterOrEqual(t, matches[i-1].MatchScore, match.MatchScore, "应按分数降序")
		}
	}
}

// TestGenerateMatchesMaxMatches 上限可配置
func TestGenerateMatchesMaxMatches(t *testing.T) {
	matches := NewMatcher(3, rand.New(rand.NewSource(1))).GenerateMatches(softwareResume())
	assert.Len(t, matches, 3)

	// 非法上限回退到默认值6
	matches = NewMatcher(0, rand.New(rand.NewSource(1))).GenerateMatches(softwareResume())
	assert.Len(t, matches, 6)
}

// TestGenerateMatchesUnknownRoleFallback 变体表没有的类别退化为类别名本身
func TestGenerateMatchesUnknownRoleFallback(t *testing.T) {
	marketing := &types.ParsedResume{
		Skills:  []string{"SEO", "Social Media", "Campaign"},
		RawText: "Ran a marketing campaign with strong SEO results.",
	}
	matches := NewMatcher(6, rand.New(rand.NewSource(7))).GenerateMatches(marketing)

	require.Len(t, matches, 1)
	assert.Equal(t, "Entry Level Marketing", matches[0].Title)
	assert.Equal(t, "Entry Level", matches[0].Level)
}

// TestSkillBasedMatchesRequireTwoHits 技术栈必备技能命中不足2项不产出
func TestSkillBasedMatchesRequireTwoHits(t *testing.T) {
	m := NewMatcher(6, rand.New(rand.NewSource(3)))

	// 只有python：每个技术栈最多命中1项
	assert.Empty(t, m.skillBasedMatches("Junior", []string{"python"}))

	// python+sql只在Python Developer栈上凑满2项
	matches := m.skillBasedMatches("Junior", []string{"python", "sql"})
	require.Len(t, matches, 1)
	assert.Equal(t, "Junior Python Developer", matches[0].Title)
	assert.Equal(t, []string{"python", "sql"}, matches[0].Keywords)

	// aws+docker+kubernetes命中Cloud Engineer栈
	matches = m.skillBasedMatches("Senior", []string{"aws", "docker", "kubernetes"})
	require.Len(t, matches, 1)
	assert.Equal(t, "Senior Cloud Engineer", matches[0].Title)
	assert.Equal(t, []string{"aws", "docker", "kubernetes"}, matches[0].Keywords)
}

// TestDetermineExperienceLevel 取声称年限和经历条数×1.5的较大者分档
func TestDetermineExperienceLevel(t *testing.T) {
	cases := []struct {
		name   string
		resume *types.ParsedResume
		want   string
	}{
		{"空简历", &types.ParsedResume{}, "Entry Level"},
		{"一段经历", &types.ParsedResume{WorkExperience: make([]types.WorkExperience, 1)}, "Junior"},
		{"两段经历", &types.ParsedResume{WorkExperience: make([]types.WorkExperience, 2)}, "Mid Level"},
		{"声称8年", &types.ParsedResume{RawText: "8 years of backend experience"}, "Senior"},
		{"声称12年缩写", &types.ParsedResume{RawText: "12 yrs in infrastructure"}, "Lead/Principal"},
		{"取较大者", &types.ParsedResume{
			RawText:        "2 years of experience",
			WorkExperience: make([]types.WorkExperience, 3),
		}, "Mid Level"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, DetermineExperienceLevel(c.resume))
		})
	}
}

// TestJobSearchURL 职位标题中的空格按路径转义为%20
func TestJobSearchURL(t *testing.T) {
	assert.Equal(t,
		"https://www.linkedin.com/jobs/search/?keywords=Junior%20Software%20Developer",
		jobSearchURL("Junior Software Developer"))
}

// TestMatchScoreClamp 扰动后的分数始终限制在[50,95]
func TestMatchScoreClamp(t *testing.T) {
	m := NewMatcher(6, rand.New(rand.NewSource(9)))
	for i := 0; i < 200; i++ {
		low := m.matchScore(0, 5)
		high := m.matchScore(5, 5)
		assert.GreaterOrEqual(t, low, 50)
		assert.LessOrEqual(t, high, 95)
	}
	// 必备技能数为0时按1处理，不会除零
	assert.NotPanics(t, func() { m.matchScore(0, 0) })
}

// TestRoleBasedMatchDecay 排序靠后的变体降分但不低于60
func TestRoleBasedMatchDecay(t *testing.T) {
	// 没有任何技能时基准分恒为下限50，衰减后全部抬升到下限60
	m := NewMatcher(6, rand.New(rand.NewSource(5)))
	matches := m.roleBasedMatches("Software Engineer", "Entry Level", nil)
	require.Len(t, matches, 5)
	for i, match := range matches {
		assert.Equal(t, 60, match.MatchScore, "match[%d]", i)
		assert.Empty(t, match.Keywords, "match[%d]", i)
	}
}
