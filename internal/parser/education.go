package parser

import (
	"regexp"
	"strings"

	"resume-analyzer-go/internal/types"
)

var (
	yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	gpaPattern  = regexp.MustCompile(`(?i)gpa[:\s]*(\d+\.?\d*)`)
)

var (
	// educationLineKeywords 行级教育关键词。含这些词的行即使在教育章节之外
	// 也会被记录，许多简历把学历揉在开头而没有独立章节。
	educationLineKeywords = []string{
		"university", "college", "school", "bachelor",
		"master", "phd", "degree", "diploma",
	}

	degreeKeywords = []string{
		"bachelor", "master", "phd", "mba",
		"bs", "ba", "ms", "ma", "bsc", "msc",
	}

	fieldKeywords = []string{
		"computer science", "engineering", "business",
		"marketing", "finance", "economics",
	}
)

// ExtractEducation 提取教育经历。
// 章节内所有长度超过10的行各生成一条记录，字段缺失时使用占位值。
func ExtractEducation(text string) []types.Education {
	education := []types.Education{}

	bounds := sectionBoundaries[types.SectionEducation]
	bounds.scan(text, func(ev lineEvent) {
		if !ev.in && !containsAny(ev.lower, educationLineKeywords) {
			return
		}

		line := strings.TrimSpace(ev.raw)
		if len(line) <= 10 {
			return
		}

		education = append(education, types.Education{
			Institution:    institutionFromLine(line),
			Degree:         degreeFromLine(line),
			Field:          fieldFromLine(line),
			GraduationYear: yearPattern.FindString(line),
			GPA:            gpaFromLine(line),
		})
	})

	return education
}

// institutionFromLine 取第一个逗号之前的部分作为院校名
func institutionFromLine(line string) string {
	first := strings.TrimSpace(strings.SplitN(line, ",", 2)[0])
	if first == "" {
		return line
	}
	return first
}

func degreeFromLine(line string) string {
	lower := strings.ToLower(line)
	for _, kw := range degreeKeywords {
		if strings.Contains(lower, kw) {
			return strings.ToUpper(kw[:1]) + kw[1:]
		}
	}
	return "Degree"
}

func fieldFromLine(line string) string {
	lower := strings.ToLower(line)
	for _, kw := range fieldKeywords {
		if strings.Contains(lower, kw) {
			return kw
		}
	}
	return "Field of Study"
}

func gpaFromLine(line string) string {
	m := gpaPattern.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return m[1]
}
