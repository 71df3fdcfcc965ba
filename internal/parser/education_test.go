package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtractEducation 验证教育章节内的记录提取和字段占位逻辑
func TestExtractEducation(t *testing.T) {
	text := `John Smith

Education
Stanford University, Bachelor of Science in Computer Science, 2018, GPA: 3.8
short
Central State College, Master of Business Administration, 2012

Experience
Acme Corp - Engineer`

	education := ExtractEducation(text)
	require.Len(t, education, 2)

	first := education[0]
	assert.Equal(t, "Stanford University", first.Institution)
	assert.Equal(t, "Bachelor", first.Degree)
	assert.Equal(t, "computer science", first.Field)
	assert.Equal(t, "2018", first.GraduationYear)
	assert.Equal(t, "3.8", first.GPA)

	second := education[1]
	assert.Equal(t, "Central State College", second.Institution)
	assert.Equal(t, "Master", second.Degree)
	assert.Equal(t, "business", second.Field)
	assert.Equal(t, "2012", second.GraduationYear)
	assert.Equal(t, "", second.GPA)
}

// TestExtractEducationKeywordFallback 没有独立教育章节时，
// 含学历关键词的行也应被记录
func TestExtractEducationKeywordFallback(t *testing.T) {
	text := `Jane Doe
Bachelor of Science in Computer Science, MIT College, 2016`

	education := ExtractEducation(text)
	require.Len(t, education, 1)
	assert.Equal(t, "Bachelor of Science in Computer Science", education[0].Institution)
	assert.Equal(t, "Bachelor", education[0].Degree)
	assert.Equal(t, "computer science", education[0].Field)
	assert.Equal(t, "2016", education[0].GraduationYear)
	assert.Equal(t, "", education[0].GPA)
}

// TestExtractEducationPlaceholders 字段缺失时使用占位值
func TestExtractEducationPlaceholders(t *testing.T) {
	text := `Education
Some Unknown Institution Name`

	education := ExtractEducation(text)
	require.Len(t, education, 1)
	assert.Equal(t, "Some Unknown Institution Name", education[0].Institution)
	assert.Equal(t, "Degree", education[0].Degree)
	assert.Equal(t, "Field of Study", education[0].Field)
	assert.Equal(t, "", education[0].GraduationYear)
}

// TestExtractEducationEmptyText 空文本产出空集合而不是nil语义错误
func TestExtractEducationEmptyText(t *testing.T) {
	assert.Empty(t, ExtractEducation(""))
}
