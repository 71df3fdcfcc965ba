package analyzer

import (
	"math"
	"regexp"
	"strings"

	"resume-analyzer-go/internal/constants"
	"resume-analyzer-go/internal/types"
)

// actionVerbs 关键词评分用的动作动词表，得分为命中比例×100
var actionVerbs = []string{
	"manage", "lead", "develop", "implement", "design", "optimize", "improve",
	"collaborate", "analyze", "create", "build", "maintain", "support",
}

var (
	// 连续2个以上大写字母的缩写词
	abbreviationPattern = regexp.MustCompile(`\b[A-Z]{2,}\b`)
	sentenceSplit       = regexp.MustCompile(`[.!?]+`)
	// 简化的被动语态指示词
	passivePattern = regexp.MustCompile(`\b(was|were|been|being)\b`)
)

// CalculateScores 计算四个相互独立的0-100评分
func CalculateScores(resume *types.ParsedResume) types.ScoreSet {
	return types.ScoreSet{
		Structure:   calculateStructureScore(resume),
		Content:     calculateContentScore(resume),
		Keywords:    calculateKeywordScore(resume),
		Readability: calculateReadabilityScore(resume),
	}
}

// OverallScore 四个子分的算术平均，四舍五入
func OverallScore(scores types.ScoreSet) int {
	sum := scores.Structure + scores.Content + scores.Keywords + scores.Readability
	return int(math.Round(float64(sum) / 4.0))
}

// calculateStructureScore 按关键章节是否存在加分
func calculateStructureScore(resume *types.ParsedResume) int {
	score := 0

	if resume.Name != "" && resume.Name != constants.NameNotFound {
		score += 15
	}
	if resume.Email != "" {
		score += 15
	}
	if len(resume.WorkExperience) > 0 {
		score += 25
	}
	if len(resume.Education) > 0 {
		score += 20
	}
	if len(resume.Skills) > 0 {
		score += 25
	}

	if score > 100 {
		score = 100
	}
	return score
}

// calculateContentScore 按内容充实程度加分
func calculateContentScore(resume *types.ParsedResume) int {
	score := 0

	// 任一工作经历有超过2条职责即视为详实
	for _, exp := range resume.WorkExperience {
		if len(exp.Responsibilities) > 2 {
			score += 30
			break
		}
	}

	// 技能多样性
	if len(resume.Skills) >= 5 {
		score += 25
	}
	if len(resume.Skills) >= 10 {
		score += 10
	}

	// 教育经历完整性：院校、学位、专业都有值
	for _, edu := range resume.Education {
		if edu.Institution != "" && edu.Degree != "" && edu.Field != "" {
			score += 20
			break
		}
	}

	if len(resume.Projects) > 0 {
		score += 15
	}

	if score > 100 {
		score = 100
	}
	return score
}

// calculateKeywordScore 动作动词命中比例×100，四舍五入
func calculateKeywordScore(resume *types.ParsedResume) int {
	text := strings.ToLower(resume.RawText)

	found := 0
	for _, verb := range actionVerbs {
		if strings.Contains(text, verb) {
			found++
		}
	}

	score := int(math.Round(float64(found) / float64(len(actionVerbs)) * 100))
	if score > 100 {
		score = 100
	}
	return score
}

// calculateReadabilityScore 从100开始按可读性问题扣分。
// 空文本没有任何问题可扣，得满分。
func calculateReadabilityScore(resume *types.ParsedResume) int {
	score := 100
	text := resume.RawText

	// 未解释的技术缩写过多
	if len(abbreviationPattern.FindAllString(text, -1)) > 20 {
		score -= 15
	}

	// 平均句长（近似值）
	sentenceCount := 0
	for _, s := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentenceCount++
		}
	}
	if sentenceCount > 0 {
		wordCount := len(strings.Fields(text))
		if float64(wordCount)/float64(sentenceCount) > 25 {
			score -= 10
		}
	}

	// 被动语态过多
	passiveCount := len(passivePattern.FindAllString(strings.ToLower(text), -1))
	if passiveCount > 10 {
		score -= 15
	}

	if score < 0 {
		score = 0
	}
	return score
}
