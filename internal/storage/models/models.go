package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ResumeSubmission 简历提交/快照表，一次上传对应一行
type ResumeSubmission struct {
	SubmissionUUID      string         `gorm:"type:char(36);primaryKey"`
	SubmissionTimestamp time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);index:idx_rs_submission_timestamp"`
	SourceChannel       string         `gorm:"type:varchar(100)"`
	OriginalFilename    string         `gorm:"type:varchar(255)"`
	OriginalFilePathOSS string         `gorm:"type:varchar(1024)"`
	ParsedTextPathOSS   string         `gorm:"type:varchar(1024)"`
	RawFileMD5          string         `gorm:"type:char(32);index:idx_rs_raw_file_md5"`
	ParsedName          string         `gorm:"type:varchar(255)"`
	ParsedEmail         string         `gorm:"type:varchar(255)"`
	ParsedPhone         string         `gorm:"type:varchar(50)"`
	ParsedResumeJSON    datatypes.JSON `gorm:"type:json"`
	ProcessingStatus    string         `gorm:"type:varchar(50);default:'PENDING_PARSING';index:idx_rs_processing_status"`
	ParserVersion       string         `gorm:"type:varchar(50)"`
	CreatedAt           time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt           time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (ResumeSubmission) TableName() string {
	return "resume_submissions"
}

// AnalysisReport 简历分析报告表，与提交一一对应
type AnalysisReport struct {
	ReportID         string         `gorm:"type:char(36);primaryKey"`
	SubmissionUUID   string         `gorm:"type:char(36);not null;uniqueIndex:idx_ar_submission_uuid"`
	OverallScore     int            `gorm:"type:int;not null"`
	StructureScore   int            `gorm:"type:int;not null"`
	ContentScore     int            `gorm:"type:int;not null"`
	KeywordScore     int            `gorm:"type:int;not null"`
	ReadabilityScore int            `gorm:"type:int;not null"`
	DetectedRole     string         `gorm:"type:varchar(100)"`
	StrengthsJSON    datatypes.JSON `gorm:"type:json"`
	WeaknessesJSON   datatypes.JSON `gorm:"type:json"`
	SuggestionsJSON  datatypes.JSON `gorm:"type:json"`
	SkillGapsJSON    datatypes.JSON `gorm:"type:json"`
	CreatedAt        time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt        time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`

	ResumeSubmission *ResumeSubmission `gorm:"foreignKey:SubmissionUUID;references:SubmissionUUID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (AnalysisReport) TableName() string {
	return "analysis_reports"
}

// JobMatchRecord 岗位匹配结果表，每次分析按排名整批重写
type JobMatchRecord struct {
	MatchID        uint64         `gorm:"primaryKey;autoIncrement"`
	SubmissionUUID string         `gorm:"type:char(36);not null;index:idx_jmr_submission_uuid;uniqueIndex:idx_jmr_submission_rank,priority:1"`
	Rank           int            `gorm:"not null;uniqueIndex:idx_jmr_submission_rank,priority:2"`
	Title          string         `gorm:"type:varchar(255);not null"`
	Level          string         `gorm:"type:varchar(50)"`
	KeywordsJSON   datatypes.JSON `gorm:"type:json"`
	SearchURL      string         `gorm:"type:varchar(1024)"`
	MatchScore     int            `gorm:"type:int;not null"`
	CreatedAt      time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`

	ResumeSubmission *ResumeSubmission `gorm:"foreignKey:SubmissionUUID;references:SubmissionUUID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (JobMatchRecord) TableName() string {
	return "job_match_records"
}

// ToJSON Helper function to convert any marshalable value to datatypes.JSON
func ToJSON(v interface{}) (datatypes.JSON, error) {
	bytes, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes, nil
}
