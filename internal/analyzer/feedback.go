package analyzer

import (
	"regexp"
	"strings"

	"resume-analyzer-go/internal/types"
)

var (
	// 量化成就：百分比、金额或"N+"
	quantifiablePattern = regexp.MustCompile(`\d+%|\$\d+|\d+\+`)
	// 建议生成用的量化检测，口径比上面更严
	quantificationPattern = regexp.MustCompile(`\d+%|\$\d+|\d+ (users|projects|team)`)
)

// genericPhrases 空泛措辞黑名单
var genericPhrases = []string{"team player", "hard worker"}

// roleRequirements 各岗位类别的必备技能，用于差距分析
var roleRequirements = map[string][]string{
	"Software Engineer": {"Git", "Testing", "Debugging", "Algorithms", "System Design"},
	"Data Scientist":    {"Statistics", "Machine Learning", "Data Visualization", "SQL", "Python/R"},
	"Product Manager":   {"Analytics", "User Research", "Roadmap Planning", "Stakeholder Management"},
	"Designer":          {"User Experience", "Prototyping", "Design Systems", "User Research"},
	"Marketing":         {"SEO", "Content Marketing", "Analytics", "Social Media", "Email Marketing"},
}

// gapRoleAlias 分类器输出到差距分析表键的映射。
// 细分的开发类岗位共享工程师的通用差距表。
var gapRoleAlias = map[string]string{
	"UX Designer":        "Designer",
	"DevOps Engineer":    "Software Engineer",
	"Frontend Developer": "Software Engineer",
	"Backend Developer":  "Software Engineer",
	"Mobile Developer":   "Software Engineer",
}

// IdentifyStrengths 识别简历的优势项
func IdentifyStrengths(resume *types.ParsedResume, scores types.ScoreSet) []string {
	strengths := []string{}

	if scores.Structure >= 80 {
		strengths = append(strengths, "Well-structured resume with all essential sections")
	}
	if len(resume.Skills) >= 10 {
		strengths = append(strengths, "Diverse skill set demonstrates versatility")
	}
	if len(resume.WorkExperience) >= 3 {
		strengths = append(strengths, "Substantial work experience shows career progression")
	}
	if len(resume.Projects) > 0 {
		strengths = append(strengths, "Portfolio projects demonstrate practical application of skills")
	}
	if len(resume.Certifications) > 0 {
		strengths = append(strengths, "Professional certifications show commitment to continuous learning")
	}
	if quantifiablePattern.MatchString(resume.RawText) {
		strengths = append(strengths, "Includes quantifiable achievements and metrics")
	}

	return strengths
}

// IdentifyWeaknesses 识别简历的薄弱项
func IdentifyWeaknesses(resume *types.ParsedResume, scores types.ScoreSet) []string {
	weaknesses := []string{}

	if resume.Phone == "" {
		weaknesses = append(weaknesses, "Missing phone number in contact information")
	}
	if len(resume.WorkExperience) == 0 {
		weaknesses = append(weaknesses, "No work experience listed")
	}
	if len(resume.Skills) < 5 {
		weaknesses = append(weaknesses, "Limited skills section - consider adding more relevant skills")
	}
	if scores.Keywords < 50 {
		weaknesses = append(weaknesses, "Lacks action verbs and impactful keywords")
	}
	if len(resume.Projects) == 0 {
		weaknesses = append(weaknesses, "No projects listed - consider adding relevant work")
	}

	lowerText := strings.ToLower(resume.RawText)
	for _, phrase := range genericPhrases {
		if strings.Contains(lowerText, phrase) {
			weaknesses = append(weaknesses, "Contains generic phrases that could be more specific")
			break
		}
	}

	return weaknesses
}

// GenerateSuggestions 生成改进建议，每条规则的优先级固定
func GenerateSuggestions(resume *types.ParsedResume, scores types.ScoreSet) []types.Suggestion {
	suggestions := []types.Suggestion{}

	if scores.Structure < 70 {
		suggestions = append(suggestions, types.Suggestion{
			Section:        "Structure",
			Issue:          "Missing key resume sections",
			Recommendation: "Ensure your resume includes contact info, work experience, education, and skills sections",
			Priority:       "high",
		})
	}

	if len(resume.Skills) < 8 {
		suggestions = append(suggestions, types.Suggestion{
			Section:        "Skills",
			Issue:          "Limited skills listed",
			Recommendation: "Add more relevant technical and soft skills. Include programming languages, tools, and frameworks",
			Priority:       "medium",
		})
	}

	if scores.Keywords < 60 {
		suggestions = append(suggestions, types.Suggestion{
			Section:        "Content",
			Issue:          "Lacks impactful action verbs",
			Recommendation: "Use strong action verbs like \"developed\", \"implemented\", \"optimized\", \"led\" instead of passive language",
			Priority:       "high",
		})
	}

	if !quantificationPattern.MatchString(resume.RawText) {
		suggestions = append(suggestions, types.Suggestion{
			Section:        "Experience",
			Issue:          "Missing quantifiable achievements",
			Recommendation: "Add specific numbers, percentages, and metrics to demonstrate impact (e.g., \"Improved performance by 25%\")",
			Priority:       "high",
		})
	}

	if len(resume.Projects) == 0 {
		suggestions = append(suggestions, types.Suggestion{
			Section:        "Projects",
			Issue:          "No projects section",
			Recommendation: "Add a projects section showcasing relevant work, personal projects, or open-source contributions",
			Priority:       "medium",
		})
	}

	return suggestions
}

// IdentifySkillGaps 对照岗位必备技能找出简历缺失项。
// 必备技能只要被任一简历技能包含（不区分大小写）即视为已具备。
func IdentifySkillGaps(resume *types.ParsedResume, detectedRole string) []string {
	gapRole := detectedRole
	if alias, ok := gapRoleAlias[detectedRole]; ok {
		gapRole = alias
	}

	required := roleRequirements[gapRole]
	lowerSkills := lowerAll(resume.Skills)

	gaps := []string{}
	for _, skill := range required {
		if !skillsContain(lowerSkills, strings.ToLower(skill)) {
			gaps = append(gaps, skill)
		}
	}
	return gaps
}
