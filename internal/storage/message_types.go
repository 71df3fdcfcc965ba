package storage

import "time"

// ResumeUploadMessage 简历上传事件消息体
type ResumeUploadMessage struct {
	SubmissionUUID      string    `json:"submission_uuid"`
	OriginalFilePathOSS string    `json:"original_file_path_oss"` // MinIO中的对象键
	OriginalFilename    string    `json:"original_filename"`
	RawFileMD5          string    `json:"raw_file_md5"`
	SourceChannel       string    `json:"source_channel"`
	SubmissionTimestamp time.Time `json:"submission_timestamp"`
}
