package types

// SectionType 表示简历章节类型
type SectionType string

const (
	// SectionEducation 教育经历章节
	SectionEducation SectionType = "EDUCATION"
	// SectionWorkExperience 工作经历章节
	SectionWorkExperience SectionType = "WORK_EXPERIENCE"
	// SectionSkills 技能章节
	SectionSkills SectionType = "SKILLS"
	// SectionProjects 项目经历章节
	SectionProjects SectionType = "PROJECTS"
	// SectionCertifications 证书章节
	SectionCertifications SectionType = "CERTIFICATIONS"
)

// Education 一条教育经历记录
type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	GraduationYear string `json:"graduation_year"` // 4位年份字符串，未找到时为空
	GPA            string `json:"gpa,omitempty"`
}

// WorkExperience 一条工作经历记录
type WorkExperience struct {
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	Duration         string   `json:"duration"` // 自由文本日期范围，可能为空
	Responsibilities []string `json:"responsibilities"`
	// StartDate/EndDate 预留字段，当前提取逻辑不填充
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// Project 一条项目记录
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// ParsedResume 简历解析后的规范化结构。
// 缺失的字段用空字符串/空集合表示，而不是nil语义；
// RawText 保留原始全文，供下游基于全文的关键词和正则启发式使用。
type ParsedResume struct {
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	Education      []Education      `json:"education"`
	Skills         []string         `json:"skills"` // 语义上是集合，已去重
	WorkExperience []WorkExperience `json:"work_experience"`
	Projects       []Project        `json:"projects"`
	Certifications []string         `json:"certifications"`
	RawText        string           `json:"raw_text"`
}

// ScoreSet 四个相互独立的0-100评分
type ScoreSet struct {
	Structure   int `json:"structure"`
	Content     int `json:"content"`
	Keywords    int `json:"keywords"`
	Readability int `json:"readability"`
}

// Suggestion 一条改进建议
type Suggestion struct {
	Section        string `json:"section"`
	Issue          string `json:"issue"`
	Recommendation string `json:"recommendation"`
	Priority       string `json:"priority"` // high / medium / low，每条规则固定
}

// AnalysisResult 简历分析结果
type AnalysisResult struct {
	OverallScore int          `json:"overall_score"` // 四个子分的均值四舍五入
	Scores       ScoreSet     `json:"scores"`
	Strengths    []string     `json:"strengths"`
	Weaknesses   []string     `json:"weaknesses"`
	Suggestions  []Suggestion `json:"suggestions"`
	SkillGaps    []string     `json:"skill_gaps"`
	DetectedRole string       `json:"detected_role"`
}

// JobMatch 一条岗位匹配结果
type JobMatch struct {
	Title      string   `json:"title"`
	Level      string   `json:"level"`
	Keywords   []string `json:"keywords"`
	SearchURL  string   `json:"search_url"`
	MatchScore int      `json:"match_score"` // 限制在[50,95]
}
