package parser

import (
	"regexp"
	"strings"

	"resume-analyzer-go/internal/types"
)

// skillVocabulary 全文扫描用的技能词表，命中项按声明顺序输出
var skillVocabulary = []string{
	"javascript", "python", "java", "react", "node.js", "html", "css", "sql", "git",
	"aws", "docker", "kubernetes", "mongodb", "postgresql", "redis", "typescript",
	"angular", "vue", "express", "django", "flask", "spring", "hibernate",
	"machine learning", "data analysis", "project management", "agile", "scrum",
}

// 技能章节内的分隔符：逗号、分号和常见的圆点符号
var skillTokenSplit = regexp.MustCompile(`[,;•·]`)

// ExtractSkills 提取技能列表，两路合并：
// 词表在全文小写文本上的子串命中，加上技能章节内按分隔符切出的词条。
// 结果按首次出现顺序去重（区分大小写，词表命中恒为小写）。
func ExtractSkills(text string) []string {
	skills := []string{}
	seen := make(map[string]struct{})
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		skills = append(skills, s)
	}

	lowerText := strings.ToLower(text)
	for _, skill := range skillVocabulary {
		if strings.Contains(lowerText, skill) {
			add(skill)
		}
	}

	bounds := sectionBoundaries[types.SectionSkills]
	bounds.scan(text, func(ev lineEvent) {
		if !ev.in || strings.TrimSpace(ev.raw) == "" {
			return
		}
		for _, token := range skillTokenSplit.Split(ev.raw, -1) {
			token = strings.TrimSpace(token)
			if len(token) > 1 {
				add(token)
			}
		}
	})

	return skills
}
