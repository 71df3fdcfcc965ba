package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"resume-analyzer-go/internal/config"
	"resume-analyzer-go/internal/storage/models"
	"resume-analyzer-go/internal/types"
	"resume-analyzer-go/pkg/utils"
)

// Database 关系数据库接口
type Database interface {
	// DB 返回GORM数据库连接实例
	DB() *gorm.DB

	// Close 关闭数据库连接
	Close() error
}

// 确保MySQL实现了Database接口
var _ Database = (*MySQL)(nil)

// MySQL 提供关系数据库功能
type MySQL struct {
	db  *gorm.DB
	cfg *config.MySQLConfig
}

// NewMySQL 创建MySQL客户端并自动迁移表结构
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MySQL配置不能为空")
	}

	// 构建DSN，带超时设置
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
		cfg.ConnectTimeoutSeconds, cfg.ReadTimeoutSeconds, cfg.WriteTimeoutSeconds)

	// 配置GORM日志级别
	var logLevel logger.LogLevel
	switch cfg.LogLevel {
	case 1:
		logLevel = logger.Silent
	case 2:
		logLevel = logger.Error
	case 3:
		logLevel = logger.Warn
	case 4:
		logLevel = logger.Info
	default:
		logLevel = logger.Info
	}

	gormConfig := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logLevel),
		PrepareStmt:                              true,
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	}

	db, err := gorm.Open(mysql.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	// 设置连接池参数
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTimeMinutes) * time.Minute)

	m := &MySQL{
		db:  db,
		cfg: cfg,
	}

	if err := m.autoMigrateSchema(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("自动迁移数据库结构失败: %w", err)
	}

	log.Println("成功连接到MySQL并自动迁移数据库结构")
	return m, nil
}

// autoMigrateSchema 使用GORM自动迁移数据库表结构
func (m *MySQL) autoMigrateSchema() error {
	// 迁移时关闭SQL日志，AutoMigrate会打印大量DDL
	silentLogger := logger.New(
		log.New(log.Writer(), "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	silentDB := m.db.Session(&gorm.Session{Logger: silentLogger})

	if err := silentDB.AutoMigrate(
		&models.ResumeSubmission{},
		&models.AnalysisReport{},
		&models.JobMatchRecord{},
	); err != nil {
		return fmt.Errorf("GORM自动迁移失败: %w", err)
	}
	return nil
}

// DB 返回GORM数据库连接实例
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close 关闭数据库连接
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	return sqlDB.Close()
}

// CreateResumeSubmission 插入简历提交记录。
// 主键冲突时做无实际意义的自更新，消息重投时保持幂等。
func (m *MySQL) CreateResumeSubmission(ctx context.Context, submission *models.ResumeSubmission) error {
	return m.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "submission_uuid"}},
			DoUpdates: clause.AssignmentColumns([]string{"submission_uuid"}),
		}).Create(submission).Error
}

// GetResumeSubmission 按UUID取回提交记录
func (m *MySQL) GetResumeSubmission(ctx context.Context, submissionUUID string) (*models.ResumeSubmission, error) {
	var submission models.ResumeSubmission
	err := m.db.WithContext(ctx).First(&submission, "submission_uuid = ?", submissionUUID).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// UpdateResumeProcessingStatus 更新简历处理状态
func (m *MySQL) UpdateResumeProcessingStatus(ctx context.Context, submissionUUID string, status string) error {
	return m.db.WithContext(ctx).Model(&models.ResumeSubmission{}).
		Where("submission_uuid = ?", submissionUUID).
		Update("processing_status", status).Error
}

// UpdateParsedTextPath 记录解析文本在对象存储中的路径
func (m *MySQL) UpdateParsedTextPath(ctx context.Context, submissionUUID string, path string) error {
	return m.db.WithContext(ctx).Model(&models.ResumeSubmission{}).
		Where("submission_uuid = ?", submissionUUID).
		Update("parsed_text_path_oss", path).Error
}

// SaveParsedResume 把结构化解析结果写回提交记录
func (m *MySQL) SaveParsedResume(ctx context.Context, submissionUUID string, resume *types.ParsedResume) error {
	parsedJSON, err := models.ToJSON(resume)
	if err != nil {
		return fmt.Errorf("序列化解析结果失败: %w", err)
	}
	return m.db.WithContext(ctx).Model(&models.ResumeSubmission{}).
		Where("submission_uuid = ?", submissionUUID).
		Updates(map[string]interface{}{
			"parsed_name":        resume.Name,
			"parsed_email":       resume.Email,
			"parsed_phone":       resume.Phone,
			"parsed_resume_json": parsedJSON,
		}).Error
}

// SaveAnalysisReport 保存分析报告，同一提交重复分析时整行覆盖
func (m *MySQL) SaveAnalysisReport(ctx context.Context, report *models.AnalysisReport) error {
	return m.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "submission_uuid"}},
			UpdateAll: true,
		}).Create(report).Error
}

// GetAnalysisReport 按提交UUID取回分析报告
func (m *MySQL) GetAnalysisReport(ctx context.Context, submissionUUID string) (*models.AnalysisReport, error) {
	var report models.AnalysisReport
	err := m.db.WithContext(ctx).First(&report, "submission_uuid = ?", submissionUUID).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ReplaceJobMatches 在事务中整批重写一次提交的岗位匹配记录
func (m *MySQL) ReplaceJobMatches(ctx context.Context, submissionUUID string, matches []types.JobMatch) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_uuid = ?", submissionUUID).
			Delete(&models.JobMatchRecord{}).Error; err != nil {
			return err
		}
		if len(matches) == 0 {
			return nil
		}

		records := make([]models.JobMatchRecord, len(matches))
		for i, match := range matches {
			records[i] = models.JobMatchRecord{
				SubmissionUUID: submissionUUID,
				Rank:           i + 1,
				Title:          match.Title,
				Level:          match.Level,
				KeywordsJSON:   utils.ConvertArrayToJSON(match.Keywords),
				SearchURL:      match.SearchURL,
				MatchScore:     match.MatchScore,
			}
		}
		return tx.Create(&records).Error
	})
}

// GetJobMatches 按提交UUID取回岗位匹配记录，按排名升序
func (m *MySQL) GetJobMatches(ctx context.Context, submissionUUID string) ([]models.JobMatchRecord, error) {
	var records []models.JobMatchRecord
	err := m.db.WithContext(ctx).
		Where("submission_uuid = ?", submissionUUID).
		Order("`rank` ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
