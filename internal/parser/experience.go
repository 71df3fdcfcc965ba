package parser

import (
	"regexp"
	"strings"

	"resume-analyzer-go/internal/types"
)

var (
	// durationPattern 匹配"2019 ... 2022"式的年份区间或"2020 - present"
	durationPattern = regexp.MustCompile(`(?i)\b(19|20)\d{2}\b.*?\b(19|20)\d{2}\b|\b(19|20)\d{2}\b\s*-\s*present`)

	// dateRangeOnlyPattern 整行只有日期范围（公司和职位在上一行的排版）
	dateRangeOnlyPattern = regexp.MustCompile(`(?i)^(19|20)\d{2}\s*(?:-|–|to)\s*(?:(19|20)\d{2}|present)$`)

	companyPositionSplit = regexp.MustCompile(`[-|,]`)
	bulletPrefixPattern  = regexp.MustCompile(`^[•\-*]\s*`)
)

// ExtractWorkExperience 提取工作经历。
// 章节内含年份、连字符或"to"的行视为岗位头部行，开启一条新记录；
// 单独成行的日期范围补到当前记录的任职时间上，而不是开启新记录；
// 其余以符号开头或足够长的行归入当前记录的职责列表。
// 公司和职位都提取到的记录才会保留，退出章节和扫描结束时各冲刷一次。
func ExtractWorkExperience(text string) []types.WorkExperience {
	experience := []types.WorkExperience{}
	var current *types.WorkExperience

	flush := func() {
		if current != nil && current.Company != "" && current.Position != "" {
			experience = append(experience, *current)
		}
		current = nil
	}

	bounds := sectionBoundaries[types.SectionWorkExperience]
	bounds.scan(text, func(ev lineEvent) {
		if ev.exited {
			flush()
			return
		}
		if !ev.in || strings.TrimSpace(ev.raw) == "" {
			return
		}

		line := ev.raw
		trimmed := strings.TrimSpace(line)

		// 整行只是日期范围：归属当前记录的任职时间
		if current != nil && dateRangeOnlyPattern.MatchString(trimmed) {
			if current.Duration == "" {
				current.Duration = durationPattern.FindString(trimmed)
			}
			return
		}

		if yearPattern.MatchString(line) || strings.Contains(line, "-") || strings.Contains(line, "to") {
			flush()
			current = &types.WorkExperience{
				Company:          companyFromLine(line),
				Position:         positionFromLine(line),
				Duration:         durationPattern.FindString(line),
				Responsibilities: []string{},
			}
		} else if current != nil &&
			(strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") || len(line) > 20) {
			current.Responsibilities = append(current.Responsibilities,
				bulletPrefixPattern.ReplaceAllString(line, ""))
		}
	})

	flush()
	return experience
}

// companyFromLine 公司名通常在头部行最前面，按 - | , 切分取第一段
func companyFromLine(line string) string {
	parts := companyPositionSplit.Split(line, -1)
	if v := strings.TrimSpace(parts[0]); v != "" {
		return v
	}
	return "Company"
}

// positionFromLine 职位取头部行的第二段
func positionFromLine(line string) string {
	parts := companyPositionSplit.Split(line, -1)
	if len(parts) > 1 {
		if v := strings.TrimSpace(parts[1]); v != "" {
			return v
		}
	}
	return "Position"
}
