package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resume-analyzer-go/internal/types"
)

// TestSectionScan 验证章节扫描的进出状态机：
// 标题行本身被跳过，退出行仍会回调且带exited标记
func TestSectionScan(t *testing.T) {
	bounds := sectionBoundaries[types.SectionSkills]
	text := `Intro line
Skills
Go
Rust
Experience
Acme Corp`

	var visited []lineEvent
	bounds.scan(text, func(ev lineEvent) {
		visited = append(visited, ev)
	})

	// "Skills" 标题行不产生回调，其余5行各一次
	assert.Len(t, visited, 5)

	assert.Equal(t, "Intro line", visited[0].raw)
	assert.False(t, visited[0].in)

	assert.Equal(t, "Go", visited[1].raw)
	assert.True(t, visited[1].in)
	assert.True(t, visited[2].in)

	// 退出行：in已翻转为false，exited=true
	assert.Equal(t, "Experience", visited[3].raw)
	assert.False(t, visited[3].in)
	assert.True(t, visited[3].exited)

	assert.False(t, visited[4].in)
	assert.False(t, visited[4].exited)
}

// TestSectionScanEnterBeatsExit 同时含进入和退出关键词的行按进入处理
func TestSectionScanEnterBeatsExit(t *testing.T) {
	// "Skills and Experience" 对技能章节既是enter又是exit，enter优先
	bounds := sectionBoundaries[types.SectionSkills]
	text := `Skills and Experience
Go`

	var inside []string
	bounds.scan(text, func(ev lineEvent) {
		if ev.in {
			inside = append(inside, ev.raw)
		}
	})
	assert.Equal(t, []string{"Go"}, inside)
}

// TestSectionScanReEntry 退出后再次出现进入关键词可重新进入章节
func TestSectionScanReEntry(t *testing.T) {
	bounds := sectionBoundaries[types.SectionEducation]
	text := `Education
MIT
Experience
Acme
Academic Background
Stanford`

	var inside []string
	bounds.scan(text, func(ev lineEvent) {
		if ev.in {
			inside = append(inside, ev.raw)
		}
	})
	assert.Equal(t, []string{"MIT", "Stanford"}, inside)
}
