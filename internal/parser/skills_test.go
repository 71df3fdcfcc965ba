package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestExtractSkillsVocabulary 词表在全文上做小写子串匹配
func TestExtractSkillsVocabulary(t *testing.T) {
	text := "Built services with Python and Docker, deployed on Kubernetes."
	skills := ExtractSkills(text)
	assert.Equal(t, []string{"python", "docker", "kubernetes"}, skills)
}

// TestExtractSkillsSection 技能章节内按分隔符切分词条
func TestExtractSkillsSection(t *testing.T) {
	text := `Technologies
Go, Rust; Terraform
Experience`

	skills := ExtractSkills(text)
	assert.Equal(t, []string{"Go", "Rust", "Terraform"}, skills)
}

// TestExtractSkillsMergeAndDedup 两路结果按首次出现顺序合并，
// 去重区分大小写：词表命中恒为小写，章节词条保留原始写法
func TestExtractSkillsMergeAndDedup(t *testing.T) {
	text := `Experienced python developer.

Skills
Python, python, Go

Projects`

	skills := ExtractSkills(text)
	assert.Equal(t, []string{"python", "Python", "Go"}, skills)
}

// TestExtractSkillsSingleCharTokenDropped 长度不超过1的词条被丢弃
func TestExtractSkillsSingleCharTokenDropped(t *testing.T) {
	text := `Skills
C, Go
Education`

	skills := ExtractSkills(text)
	assert.Equal(t, []string{"Go"}, skills)
}

// TestExtractSkillsEmptyText 空文本返回空集合
func TestExtractSkillsEmptyText(t *testing.T) {
	assert.Empty(t, ExtractSkills(""))
}
