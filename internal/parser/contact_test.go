package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resume-analyzer-go/internal/constants"
)

// TestExtractName 验证姓名只在前5个非空行中查找，并正确排除非姓名行
func TestExtractName(t *testing.T) {
	t.Run("第一行即为姓名", func(t *testing.T) {
		name := ExtractName([]string{"John Smith", "john@example.com"})
		assert.Equal(t, "John Smith", name)
	})

	t.Run("跳过邮箱和电话行", func(t *testing.T) {
		lines := []string{
			"john.smith@example.com",
			"(555) 123-4567",
			"John Smith",
		}
		assert.Equal(t, "John Smith", ExtractName(lines))
	})

	t.Run("跳过含resume或cv字样的标题行", func(t *testing.T) {
		lines := []string{
			"Resume of 2024",
			"My Professional CV",
			"Jane Doe",
		}
		assert.Equal(t, "Jane Doe", ExtractName(lines))
	})

	t.Run("过短的行不是姓名", func(t *testing.T) {
		lines := []string{"Jo", "Jane Doe"}
		assert.Equal(t, "Jane Doe", ExtractName(lines))
	})

	t.Run("超出前5行的姓名不再查找", func(t *testing.T) {
		lines := []string{
			"resume 111", "cv 222", "a@b.co", "555-000-1111", "12345 Main St",
			"John Smith",
		}
		assert.Equal(t, constants.NameNotFound, ExtractName(lines))
	})

	t.Run("空输入返回哨兵值", func(t *testing.T) {
		assert.Equal(t, constants.NameNotFound, ExtractName(nil))
	})
}

// TestExtractEmail 验证取全文第一个邮箱，未找到返回空串
func TestExtractEmail(t *testing.T) {
	assert.Equal(t, "john.smith@example.com",
		ExtractEmail("Contact: john.smith@example.com or jane@other.org"))
	assert.Equal(t, "", ExtractEmail("no email here"))
}

// TestExtractPhone 验证常见电话格式均可识别
func TestExtractPhone(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Call (555) 123-4567 anytime", "(555) 123-4567"},
		{"Phone: 555.123.4567", "555.123.4567"},
		{"+1 555 123 4567", "+1 555 123 4567"},
		{"no phone", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ExtractPhone(c.text), "text=%q", c.text)
	}
}
