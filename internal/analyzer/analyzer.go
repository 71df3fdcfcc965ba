package analyzer

import (
	"resume-analyzer-go/internal/types"
)

// Analyze 对解析后的简历做完整的规则化分析。
// 纯函数：同一份输入永远产出同一份结果，对任何简历（包括空简历）都不失败。
func Analyze(resume *types.ParsedResume) *types.AnalysisResult {
	scores := CalculateScores(resume)
	detectedRole := DetectRole(resume)

	return &types.AnalysisResult{
		OverallScore: OverallScore(scores),
		Scores:       scores,
		Strengths:    IdentifyStrengths(resume, scores),
		Weaknesses:   IdentifyWeaknesses(resume, scores),
		Suggestions:  GenerateSuggestions(resume, scores),
		SkillGaps:    IdentifySkillGaps(resume, detectedRole),
		DetectedRole: detectedRole,
	}
}
