package parser

import (
	"strings"

	"resume-analyzer-go/internal/types"
)

// ParseResumeText 将简历全文解析为规范化结构。
// 全部为确定性的规则提取：同样的文本永远得到同样的结果，
// 任何字段提取不到都不是错误，下游用占位值/空集合降级。
func ParseResumeText(text string) *types.ParsedResume {
	lines := nonBlankLines(text)

	return &types.ParsedResume{
		Name:           ExtractName(lines),
		Email:          ExtractEmail(text),
		Phone:          ExtractPhone(text),
		Education:      ExtractEducation(text),
		Skills:         ExtractSkills(text),
		WorkExperience: ExtractWorkExperience(text),
		Projects:       ExtractProjects(text),
		Certifications: ExtractCertifications(text),
		RawText:        text,
	}
}

// nonBlankLines 裁剪每行首尾空白并丢弃空行
func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
