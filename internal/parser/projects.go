package parser

import (
	"strings"

	"resume-analyzer-go/internal/types"
)

// projectTechVocabulary 项目行内识别技术栈用的小词表
var projectTechVocabulary = []string{
	"react", "node", "python", "java", "javascript", "html", "css", "sql",
}

// ExtractProjects 提取项目经历，章节内长度超过10的行各生成一条记录
func ExtractProjects(text string) []types.Project {
	projects := []types.Project{}

	bounds := sectionBoundaries[types.SectionProjects]
	bounds.scan(text, func(ev lineEvent) {
		line := strings.TrimSpace(ev.raw)
		if !ev.in || len(line) <= 10 {
			return
		}
		projects = append(projects, types.Project{
			Name:         projectNameFromLine(line),
			Description:  line,
			Technologies: technologiesFromLine(line),
		})
	})

	return projects
}

// projectNameFromLine 项目名取第一个连字符之前的部分
func projectNameFromLine(line string) string {
	name := strings.TrimSpace(strings.SplitN(line, "-", 2)[0])
	if name == "" {
		return line
	}
	return name
}

func technologiesFromLine(line string) []string {
	lower := strings.ToLower(line)
	technologies := []string{}
	for _, tech := range projectTechVocabulary {
		if strings.Contains(lower, tech) {
			technologies = append(technologies, tech)
		}
	}
	return technologies
}

// ExtractCertifications 提取证书，章节内长度超过5的行原样保留
func ExtractCertifications(text string) []string {
	certifications := []string{}

	bounds := sectionBoundaries[types.SectionCertifications]
	bounds.scan(text, func(ev lineEvent) {
		line := strings.TrimSpace(ev.raw)
		if ev.in && len(line) > 5 {
			certifications = append(certifications, line)
		}
	})

	return certifications
}
