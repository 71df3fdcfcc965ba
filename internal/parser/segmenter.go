package parser

import (
	"strings"

	"resume-analyzer-go/internal/types"
)

// sectionBounds 描述一类章节在整篇文本中的边界：
// 进入关键词出现在一行时视为进入该章节（标题行本身不产生内容），
// 退出关键词出现时退出。两组关键词都是小写子串匹配。
type sectionBounds struct {
	enter []string
	exit  []string
}

// sectionBoundaries 各章节的显式边界定义。
// 关键词刻意保持宽松的子串语义，真实简历的章节标题变体很多
// （"Work Experience" / "Employment History" / "Experience"）。
var sectionBoundaries = map[types.SectionType]sectionBounds{
	types.SectionEducation: {
		enter: []string{"education", "academic"},
		exit:  []string{"experience", "work", "project"},
	},
	types.SectionSkills: {
		enter: []string{"skill", "technolog", "competenc"},
		exit:  []string{"experience", "education", "project"},
	},
	types.SectionWorkExperience: {
		enter: []string{"experience", "work", "employment"},
		exit:  []string{"education", "project", "skill"},
	},
	types.SectionProjects: {
		enter: []string{"project", "portfolio"},
		exit:  []string{"experience", "education", "skill"},
	},
	types.SectionCertifications: {
		enter: []string{"certification", "certificate", "license"},
		exit:  []string{"experience", "education", "skill"},
	},
}

// lineEvent 章节扫描过程中传给访问函数的一行
type lineEvent struct {
	raw    string // 原始行（未裁剪）
	lower  string // 小写且去除首尾空白后的行
	in     bool   // 当前行是否位于目标章节内
	exited bool   // 本行是否触发了章节退出
}

// containsAny 判断小写行是否包含任一关键词
func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// scan 按行扫描文本并维护章节进出状态。
// 进入关键词优先于退出关键词，且标题行本身被跳过；
// 退出行仍会回调（exited=true），提取器可能需要在退出时冲刷未完成的记录，
// 或在章节外执行各自的关键词降级逻辑。
func (b sectionBounds) scan(text string, visit func(ev lineEvent)) {
	in := false
	for _, raw := range strings.Split(text, "\n") {
		lower := strings.ToLower(strings.TrimSpace(raw))

		if containsAny(lower, b.enter) {
			in = true
			continue
		}

		exited := false
		if in && containsAny(lower, b.exit) {
			in = false
			exited = true
		}

		visit(lineEvent{raw: raw, lower: lower, in: in, exited: exited})
	}
}
