package constants

// 简历处理状态机
const (
	StatusPendingParsing       = "PENDING_PARSING"
	StatusTextExtractionFailed = "TEXT_EXTRACTION_FAILED"
	StatusAnalysisFailed       = "ANALYSIS_FAILED"
	StatusAnalysisComplete     = "ANALYSIS_COMPLETE"

	// 上传接口返回的状态
	StatusSubmitted        = "SUBMITTED_FOR_PROCESSING"
	StatusDuplicateSkipped = "DUPLICATE_FILE_SKIPPED"
)

const (
	// NameNotFound 姓名提取失败时的哨兵值，不是错误
	NameNotFound = "Name not found"
)
