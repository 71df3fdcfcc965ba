package constants

import "time"

// Redis Key 前缀和格式常量
// 统一命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// FileModulePrefix 文件模块
	FileModulePrefix = "file"
	// ResumeModulePrefix 简历模块
	ResumeModulePrefix = "resume"

	// KeyFileMD5Set 原始文件MD5集合，用于上传去重 (SET)
	// 格式: app:file:dedup_set
	KeyFileMD5Set = AppPrefix + ":" + FileModulePrefix + ":dedup_set"

	// KeyParsedResume 结构化简历缓存 (STRING, JSON)
	// 格式: app:resume:parsed:{submission_uuid}
	KeyParsedResume = AppPrefix + ":" + ResumeModulePrefix + ":parsed:%s"

	// KeyAnalysisResult 分析结果缓存 (STRING, JSON)
	// 格式: app:resume:analysis:{submission_uuid}
	KeyAnalysisResult = AppPrefix + ":" + ResumeModulePrefix + ":analysis:%s"

	// KeyJobMatches 岗位匹配结果缓存 (STRING, JSON)
	// 格式: app:resume:matches:{submission_uuid}
	KeyJobMatches = AppPrefix + ":" + ResumeModulePrefix + ":matches:%s"
)

const (
	// ResumeCacheTTL 解析/分析结果缓存时长
	ResumeCacheTTL = 24 * time.Hour
)
