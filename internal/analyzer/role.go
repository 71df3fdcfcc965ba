package analyzer

import (
	"strings"

	"resume-analyzer-go/internal/types"
)

// roleIndicator 一个岗位类别及其指示词
type roleIndicator struct {
	role       string
	indicators []string
}

// roleIndicators 岗位分类指示词表。
// 打分时技能命中计2分、全文命中计1分，两者可叠加；
// 得分必须严格大于当前最高分才会改写结果，因此平分时声明靠前的类别胜出，
// 默认类别是 Software Engineer。
var roleIndicators = []roleIndicator{
	{"Software Engineer", []string{"javascript", "python", "java", "react", "node", "git", "api", "web development"}},
	{"Data Scientist", []string{"python", "machine learning", "data analysis", "pandas", "numpy", "statistics", "sql"}},
	{"Product Manager", []string{"product management", "roadmap", "stakeholder", "analytics", "user research", "agile"}},
	{"UX Designer", []string{"ux", "ui", "design", "figma", "sketch", "user research", "prototyping"}},
	{"DevOps Engineer", []string{"aws", "docker", "kubernetes", "jenkins", "ci/cd", "terraform", "monitoring"}},
	{"Frontend Developer", []string{"react", "vue", "angular", "html", "css", "javascript", "typescript"}},
	{"Backend Developer", []string{"node.js", "python", "java", "api", "database", "microservices", "server"}},
	{"Mobile Developer", []string{"react native", "flutter", "ios", "android", "swift", "kotlin", "mobile"}},
	{"Marketing", []string{"marketing", "seo", "content", "social media", "campaign", "analytics"}},
}

// DetectRole 根据技能列表和全文推断最可能的岗位类别。
// 反馈生成和岗位匹配共用这一个分类器，保证两边看到同一个角色。
func DetectRole(resume *types.ParsedResume) string {
	text := strings.ToLower(resume.RawText)
	skills := lowerAll(resume.Skills)

	detected := "Software Engineer"
	maxScore := 0

	for _, ri := range roleIndicators {
		score := 0
		for _, indicator := range ri.indicators {
			if skillsContain(skills, indicator) {
				score += 2
			}
			if strings.Contains(text, indicator) {
				score++
			}
		}
		if score > maxScore {
			maxScore = score
			detected = ri.role
		}
	}

	return detected
}

// skillsContain 任一技能包含指示词即命中
func skillsContain(lowerSkills []string, indicator string) bool {
	for _, skill := range lowerSkills {
		if strings.Contains(skill, indicator) {
			return true
		}
	}
	return false
}

func lowerAll(items []string) []string {
	lowered := make([]string, len(items))
	for i, item := range items {
		lowered[i] = strings.ToLower(item)
	}
	return lowered
}
