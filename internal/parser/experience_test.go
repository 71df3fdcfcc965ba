package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtractWorkExperience 验证头部行解析、职责归属和退出冲刷
func TestExtractWorkExperience(t *testing.T) {
	text := `Experience
Acme Corp - Senior Software Engineer
• Developed scalable web services in Go and Python
• Improved API performance by 40%
• Led a team of five engineers across two offices

Education`

	experience := ExtractWorkExperience(text)
	require.Len(t, experience, 1)

	job := experience[0]
	assert.Equal(t, "Acme Corp", job.Company)
	assert.Equal(t, "Senior Software Engineer", job.Position)
	assert.Equal(t, []string{
		"Developed scalable web services in Go and Python",
		"Improved API performance by 40%",
		"Led a team of five engineers across two offices",
	}, job.Responsibilities)
}

// TestExtractWorkExperienceDateRangeLine 单独成行的日期范围
// 归属当前记录的任职时间，而不是开启一条新记录
func TestExtractWorkExperienceDateRangeLine(t *testing.T) {
	text := `Work History
Initech - Software Engineer
2015 to 2019
Globex - Staff Engineer
2020 - present`

	experience := ExtractWorkExperience(text)
	require.Len(t, experience, 2)

	assert.Equal(t, "Initech", experience[0].Company)
	assert.Equal(t, "Software Engineer", experience[0].Position)
	assert.Equal(t, "2015 to 2019", experience[0].Duration)

	assert.Equal(t, "Globex", experience[1].Company)
	assert.Equal(t, "Staff Engineer", experience[1].Position)
	assert.Equal(t, "2020 - present", experience[1].Duration)
}

// TestExtractWorkExperienceDurationOnHeaderLine 头部行自带年份区间时直接提取
func TestExtractWorkExperienceDurationOnHeaderLine(t *testing.T) {
	text := `Employment
Hooli - Platform Engineer, 2017 - 2021`

	experience := ExtractWorkExperience(text)
	require.Len(t, experience, 1)
	assert.Equal(t, "Hooli", experience[0].Company)
	assert.Equal(t, "Platform Engineer", experience[0].Position)
	assert.Equal(t, "2017 - 2021", experience[0].Duration)
}

// TestExtractWorkExperienceIncompleteDropped 公司或职位缺失的记录不保留
func TestExtractWorkExperienceIncompleteDropped(t *testing.T) {
	// 头部行只有一段，职位用占位值补齐，仍会保留
	text := `Experience
Freelance 2021`
	experience := ExtractWorkExperience(text)
	require.Len(t, experience, 1)
	assert.Equal(t, "Freelance 2021", experience[0].Company)
	assert.Equal(t, "Position", experience[0].Position)

	// 章节外的内容不产生记录
	assert.Empty(t, ExtractWorkExperience("Initech - Software Engineer\n2015 to 2019"))
}

// TestExtractWorkExperienceEmptyText 空文本返回空集合
func TestExtractWorkExperienceEmptyText(t *testing.T) {
	assert.Empty(t, ExtractWorkExperience(""))
}
