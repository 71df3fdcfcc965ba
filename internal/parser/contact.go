package parser

import (
	"regexp"
	"strings"

	"resume-analyzer-go/internal/constants"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	// 连续3位数字，用于把电话/地址行从候选姓名中排除
	tripleDigitPattern = regexp.MustCompile(`\d{3}`)
)

// ExtractName 在前5个非空行中查找第一条像姓名的行。
// 排除含邮箱、连续数字或"resume"/"cv"字样的行；
// 找不到时返回哨兵值而不是错误，缺失姓名只影响评分。
func ExtractName(lines []string) string {
	limit := 5
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		lower := strings.ToLower(line)
		if len(line) > 3 &&
			!strings.Contains(line, "@") &&
			!tripleDigitPattern.MatchString(line) &&
			!strings.Contains(lower, "resume") &&
			!strings.Contains(lower, "cv") {
			return line
		}
	}
	return constants.NameNotFound
}

// ExtractEmail 提取全文中第一个邮箱地址，未找到返回空串
func ExtractEmail(text string) string {
	return emailPattern.FindString(text)
}

// ExtractPhone 提取全文中第一个电话号码，未找到返回空串
func ExtractPhone(text string) string {
	return phonePattern.FindString(text)
}
