package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtractProjects 章节内的长行各生成一条项目记录
func TestExtractProjects(t *testing.T) {
	text := `Projects
Resume Analyzer - built with React and a Node.js backend
short
Inventory Dashboard - internal reporting tool

Education`

	projects := ExtractProjects(text)
	require.Len(t, projects, 2)

	first := projects[0]
	assert.Equal(t, "Resume Analyzer", first.Name)
	assert.Equal(t, "Resume Analyzer - built with React and a Node.js backend", first.Description)
	assert.Equal(t, []string{"react", "node"}, first.Technologies)

	second := projects[1]
	assert.Equal(t, "Inventory Dashboard", second.Name)
	assert.Empty(t, second.Technologies)
}

// TestExtractProjectsNameFallback 行内没有连字符时项目名就是整行
func TestExtractProjectsNameFallback(t *testing.T) {
	text := `Portfolio
Realtime chat application in Python

Skills`

	projects := ExtractProjects(text)
	require.Len(t, projects, 1)
	assert.Equal(t, "Realtime chat application in Python", projects[0].Name)
	assert.Equal(t, []string{"python"}, projects[0].Technologies)
}

// TestExtractProjectsCertificationHeaderNotExit 证书标题不含项目段的退出关键词，
// 段不会关闭，标题行（超过10字符）本身成为一条项目
func TestExtractProjectsCertificationHeaderNotExit(t *testing.T) {
	text := `Projects
Resume Analyzer - built with React and a Node.js backend

Certifications
AWS SAA`

	projects := ExtractProjects(text)
	require.Len(t, projects, 2)
	assert.Equal(t, "Resume Analyzer", projects[0].Name)
	assert.Equal(t, "Certifications", projects[1].Name)
	// "AWS SAA" 只有7个字符，不会成为项目
}

// TestExtractCertifications 证书章节内的行原样保留
func TestExtractCertifications(t *testing.T) {
	text := `Certifications
AWS Certified Solutions Architect
shrt
CKA: Certified Kubernetes Administrator

Education`

	certifications := ExtractCertifications(text)
	assert.Equal(t, []string{
		"AWS Certified Solutions Architect",
		"CKA: Certified Kubernetes Administrator",
	}, certifications)
}

// TestExtractCertificationsEmptyText 空文本返回空集合
func TestExtractCertificationsEmptyText(t *testing.T) {
	assert.Empty(t, ExtractCertifications(""))
	assert.Empty(t, ExtractProjects(""))
}
