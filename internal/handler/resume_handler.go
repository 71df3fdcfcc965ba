package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/gofrs/uuid/v5"
	googleuuid "github.com/google/uuid"

	"resume-analyzer-go/internal/analyzer"
	"resume-analyzer-go/internal/config"
	"resume-analyzer-go/internal/constants"
	"resume-analyzer-go/internal/logger"
	"resume-analyzer-go/internal/matcher"
	"resume-analyzer-go/internal/parser"
	"resume-analyzer-go/internal/storage"
	"resume-analyzer-go/internal/storage/models"
	"resume-analyzer-go/internal/types"
	"resume-analyzer-go/pkg/ratelimit"
	"resume-analyzer-go/pkg/utils"
)

// 对MinIO等外部存储调用的全局速率上限（每分钟）
const storageOpsQPM = 600

// ResumeHandler 简历处理器，负责协调上传和异步分析流程
type ResumeHandler struct {
	cfg       *config.Config
	storage   *storage.Storage
	extractor parser.TextExtractor
	matcher   *matcher.Matcher
	// storageRetry 对象存储调用的限流和重试策略，
	// 重试间隔和次数来自RabbitMQ配置段，与消息重投策略保持一致
	storageRetry *ratelimit.TokenBucket
}

// NewResumeHandler 创建一个新的简历处理器
func NewResumeHandler(
	cfg *config.Config,
	store *storage.Storage,
	extractor parser.TextExtractor,
	jobMatcher *matcher.Matcher,
) *ResumeHandler {
	storageRetry := ratelimit.NewTokenBucket(storageOpsQPM, 0).WithRetryPolicy(
		config.GetDuration(cfg.RabbitMQ.RetryInterval, 5*time.Second),
		cfg.RabbitMQ.MaxRetries,
	)

	return &ResumeHandler{
		cfg:          cfg,
		storage:      store,
		extractor:    extractor,
		matcher:      jobMatcher,
		storageRetry: storageRetry,
	}
}

// ResumeUploadResponse 简历上传响应
type ResumeUploadResponse struct {
	SubmissionUUID string `json:"submission_uuid"`
	Status         string `json:"status"`
}

// HandleResumeUpload 处理简历上传请求。
// 流程: 读文件 -> MD5去重 -> 上传MinIO -> 登记MD5 -> 发布上传事件。
// 真正的解析和分析在消费者侧异步完成。
func (h *ResumeHandler) HandleResumeUpload(ctx context.Context, reader io.Reader, fileSize int64,
	filename string, sourceChannel string) (*ResumeUploadResponse, error) {

	// reader只能读一次，先整体读出用于MD5和上传
	fileBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件内容失败: %w", err)
	}
	fileMD5Hex := utils.CalculateMD5(fileBytes)

	// 检查文件MD5是否已存在于Redis Set
	exists, err := h.storage.Redis.CheckRawFileMD5Exists(ctx, fileMD5Hex)
	if err != nil {
		logger.Error().
			Err(err).
			Str("md5", fileMD5Hex).
			Msg("查询Redis文件MD5 Set失败")
		return nil, fmt.Errorf("检查文件MD5重复性时Redis查询失败: %w", err)
	}

	if exists {
		logger.Info().
			Str("md5", fileMD5Hex).
			Str("filename", filename).
			Msg("检测到重复的文件MD5，跳过处理")
		return &ResumeUploadResponse{
			SubmissionUUID: "",
			Status:         constants.StatusDuplicateSkipped,
		}, nil
	}

	// 生成UUIDv7作为提交ID，天然按时间有序
	uuidV7, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("生成UUIDv7失败: %w", err)
	}
	submissionUUID := uuidV7.String()

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".pdf"
	}

	// 上传原始文件到MinIO，瞬时网络错误按退避策略重试
	var originalObjectKey string
	err = h.storageRetry.RetryWithBackoff(ctx, func() error {
		var uploadErr error
		originalObjectKey, uploadErr = h.storage.MinIO.UploadResumeFile(ctx, submissionUUID, ext,
			bytes.NewReader(fileBytes), int64(len(fileBytes)))
		return uploadErr
	})
	if err != nil {
		return nil, fmt.Errorf("上传简历到MinIO失败: %w", err)
	}

	// 上传成功后登记MD5。登记失败不阻断流程，
	// 去重失效的代价只是同一文件被重复分析一次。
	if err := h.storage.Redis.AddRawFileMD5(ctx, fileMD5Hex); err != nil {
		logger.Warn().
			Err(err).
			Str("md5", fileMD5Hex).
			Str("object_key", originalObjectKey).
			Msg("添加文件MD5到Redis Set失败，文件已上传到MinIO")
	}

	message := storage.ResumeUploadMessage{
		SubmissionUUID:      submissionUUID,
		OriginalFilePathOSS: originalObjectKey,
		OriginalFilename:    filename,
		RawFileMD5:          fileMD5Hex,
		SourceChannel:       sourceChannel,
		SubmissionTimestamp: time.Now(),
	}

	err = h.storage.RabbitMQ.PublishJSON(
		ctx,
		h.cfg.RabbitMQ.ResumeEventsExchange,
		h.cfg.RabbitMQ.UploadedRoutingKey,
		message,
		true, // 持久化
	)
	if err != nil {
		return nil, fmt.Errorf("发布消息到RabbitMQ失败: %w", err)
	}

	return &ResumeUploadResponse{
		SubmissionUUID: submissionUUID,
		Status:         constants.StatusSubmitted,
	}, nil
}

// StartResumeUploadConsumer 启动简历上传消费者。
// 确定性失败（文档无法解码）直接标记状态并确认消息，重投不会改变结果；
// 基础设施错误（存储、数据库）拒绝消息等待重投。
func (h *ResumeHandler) StartResumeUploadConsumer(ctx context.Context) error {
	logger.Info().
		Str("exchange", h.cfg.RabbitMQ.ResumeEventsExchange).
		Str("routing_key", h.cfg.RabbitMQ.UploadedRoutingKey).
		Msg("初始化RabbitMQ配置")

	if err := h.storage.RabbitMQ.EnsureExchange(h.cfg.RabbitMQ.ResumeEventsExchange, "direct", true); err != nil {
		return fmt.Errorf("确保交换机存在失败: %w", err)
	}
	if err := h.storage.RabbitMQ.EnsureQueue(h.cfg.RabbitMQ.RawResumeQueue, true); err != nil {
		return fmt.Errorf("确保队列存在失败: %w", err)
	}
	if err := h.storage.RabbitMQ.BindQueue(
		h.cfg.RabbitMQ.RawResumeQueue,
		h.cfg.RabbitMQ.ResumeEventsExchange,
		h.cfg.RabbitMQ.UploadedRoutingKey,
	); err != nil {
		return fmt.Errorf("绑定队列失败: %w", err)
	}

	prefetch := h.cfg.RabbitMQ.PrefetchCount
	if prefetch <= 0 {
		prefetch = 10
	}
	workers := h.cfg.RabbitMQ.ConsumerWorkers["upload_consumer_workers"]
	if workers <= 0 {
		workers = 1
	}
	// 单条消息的处理时限，覆盖下载、提取和持久化全程
	processTimeout := config.GetDuration(h.cfg.RabbitMQ.BatchTimeouts["upload_batch_timeout"], 2*time.Minute)

	logger.Info().
		Str("queue", h.cfg.RabbitMQ.RawResumeQueue).
		Int("prefetch", prefetch).
		Int("workers", workers).
		Dur("process_timeout", processTimeout).
		Msg("简历上传消费者就绪")

	handleDelivery := func(data []byte) bool {
		var message storage.ResumeUploadMessage
		if err := json.Unmarshal(data, &message); err != nil {
			logger.Error().Err(err).Msg("解析上传事件消息失败")
			// 消息体坏了，重投也没用
			return true
		}

		msgCtx, cancel := context.WithTimeout(ctx, processTimeout)
		defer cancel()

		submission := &models.ResumeSubmission{
			SubmissionUUID:      message.SubmissionUUID,
			OriginalFilePathOSS: message.OriginalFilePathOSS,
			OriginalFilename:    message.OriginalFilename,
			RawFileMD5:          message.RawFileMD5,
			SourceChannel:       message.SourceChannel,
			SubmissionTimestamp: message.SubmissionTimestamp,
			ProcessingStatus:    constants.StatusPendingParsing,
		}
		if err := h.storage.MySQL.CreateResumeSubmission(msgCtx, submission); err != nil {
			logger.Error().Err(err).Msg("插入简历提交记录失败")
			return false
		}

		if err := h.processSubmission(msgCtx, message); err != nil {
			logger.Error().
				Err(err).
				Str("submission_uuid", message.SubmissionUUID).
				Msg("处理简历提交失败")
			// 文档解码失败是确定性的，确认消息避免无限重投
			return errors.Is(err, parser.ErrDocumentParse)
		}
		return true
	}

	for i := 0; i < workers; i++ {
		if _, err := h.storage.RabbitMQ.StartConsumer(h.cfg.RabbitMQ.RawResumeQueue, prefetch, handleDelivery); err != nil {
			return fmt.Errorf("启动消费者失败: %w", err)
		}
	}
	return nil
}

// processSubmission 消费者侧的完整处理流水线:
// 下载原始文件 -> 提取文本 -> 解析 -> 分析 -> 岗位匹配 -> 持久化和缓存。
func (h *ResumeHandler) processSubmission(ctx context.Context, message storage.ResumeUploadMessage) error {
	submissionUUID := message.SubmissionUUID

	var fileBytes []byte
	err := h.storageRetry.RetryWithBackoff(ctx, func() error {
		var downloadErr error
		fileBytes, downloadErr = h.storage.MinIO.GetResumeFile(ctx, message.OriginalFilePathOSS)
		return downloadErr
	})
	if err != nil {
		return fmt.Errorf("从MinIO下载原始简历失败: %w", err)
	}

	text, err := h.extractor.ExtractTextFromBytes(ctx, fileBytes, message.OriginalFilename)
	if err != nil {
		h.markStatus(ctx, submissionUUID, constants.StatusTextExtractionFailed)
		return fmt.Errorf("提取简历文本失败: %w", err)
	}

	// 解析文本存档到MinIO，路径回写提交记录
	var parsedTextKey string
	err = h.storageRetry.RetryWithBackoff(ctx, func() error {
		var uploadErr error
		parsedTextKey, uploadErr = h.storage.MinIO.UploadParsedText(ctx, submissionUUID, text)
		return uploadErr
	})
	if err != nil {
		h.markStatus(ctx, submissionUUID, constants.StatusAnalysisFailed)
		return fmt.Errorf("上传解析文本失败: %w", err)
	}
	if err := h.storage.MySQL.UpdateParsedTextPath(ctx, submissionUUID, parsedTextKey); err != nil {
		logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("更新解析文本路径失败")
	}

	// 提取成功后，解析、分析、匹配都是全函数，不会失败
	resume := parser.ParseResumeText(text)
	result := analyzer.Analyze(resume)
	matches := h.matcher.GenerateMatches(resume)

	if err := h.persistResults(ctx, submissionUUID, resume, result, matches); err != nil {
		h.markStatus(ctx, submissionUUID, constants.StatusAnalysisFailed)
		return fmt.Errorf("持久化分析结果失败: %w", err)
	}

	h.markStatus(ctx, submissionUUID, constants.StatusAnalysisComplete)
	logger.Info().
		Str("submission_uuid", submissionUUID).
		Int("overall_score", result.OverallScore).
		Str("detected_role", result.DetectedRole).
		Int("job_matches", len(matches)).
		Msg("简历分析完成")
	return nil
}

// persistResults 把解析、分析和匹配结果写入MySQL并缓存到Redis
func (h *ResumeHandler) persistResults(ctx context.Context, submissionUUID string,
	resume *types.ParsedResume, result *types.AnalysisResult, matches []types.JobMatch) error {

	if err := h.storage.MySQL.SaveParsedResume(ctx, submissionUUID, resume); err != nil {
		return fmt.Errorf("保存解析结果失败: %w", err)
	}

	report, err := buildAnalysisReport(submissionUUID, result)
	if err != nil {
		return err
	}
	if err := h.storage.MySQL.SaveAnalysisReport(ctx, report); err != nil {
		return fmt.Errorf("保存分析报告失败: %w", err)
	}

	if err := h.storage.MySQL.ReplaceJobMatches(ctx, submissionUUID, matches); err != nil {
		return fmt.Errorf("保存岗位匹配记录失败: %w", err)
	}

	// 缓存失败只降级为读路径回源MySQL，不算处理失败
	if err := h.storage.Redis.CacheParsedResume(ctx, submissionUUID, resume); err != nil {
		logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("缓存解析结果失败")
	}
	if err := h.storage.Redis.CacheAnalysisResult(ctx, submissionUUID, result); err != nil {
		logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("缓存分析结果失败")
	}
	if err := h.storage.Redis.CacheJobMatches(ctx, submissionUUID, matches); err != nil {
		logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("缓存岗位匹配失败")
	}

	return nil
}

// buildAnalysisReport 把分析结果转换为数据库行
func buildAnalysisReport(submissionUUID string, result *types.AnalysisResult) (*models.AnalysisReport, error) {
	strengthsJSON, err := models.ToJSON(result.Strengths)
	if err != nil {
		return nil, fmt.Errorf("序列化优势列表失败: %w", err)
	}
	weaknessesJSON, err := models.ToJSON(result.Weaknesses)
	if err != nil {
		return nil, fmt.Errorf("序列化弱点列表失败: %w", err)
	}
	suggestionsJSON, err := models.ToJSON(result.Suggestions)
	if err != nil {
		return nil, fmt.Errorf("序列化建议列表失败: %w", err)
	}
	skillGapsJSON, err := models.ToJSON(result.SkillGaps)
	if err != nil {
		return nil, fmt.Errorf("序列化技能差距失败: %w", err)
	}

	return &models.AnalysisReport{
		ReportID:         googleuuid.NewString(),
		SubmissionUUID:   submissionUUID,
		OverallScore:     result.OverallScore,
		StructureScore:   result.Scores.Structure,
		ContentScore:     result.Scores.Content,
		KeywordScore:     result.Scores.Keywords,
		ReadabilityScore: result.Scores.Readability,
		DetectedRole:     result.DetectedRole,
		StrengthsJSON:    strengthsJSON,
		WeaknessesJSON:   weaknessesJSON,
		SuggestionsJSON:  suggestionsJSON,
		SkillGapsJSON:    skillGapsJSON,
	}, nil
}

// markStatus 更新处理状态，失败只记日志
func (h *ResumeHandler) markStatus(ctx context.Context, submissionUUID, status string) {
	if err := h.storage.MySQL.UpdateResumeProcessingStatus(ctx, submissionUUID, status); err != nil {
		logger.Error().
			Err(err).
			Str("submission_uuid", submissionUUID).
			Str("status", status).
			Msg("更新简历处理状态失败")
	}
}

// SyncAnalysisResponse 同步分析接口的响应
type SyncAnalysisResponse struct {
	Resume   *types.ParsedResume   `json:"resume"`
	Analysis *types.AnalysisResult `json:"analysis"`
	Matches  []types.JobMatch      `json:"matches"`
}

// AnalyzeText 对一段已有的简历文本做同步分析，不落库不走队列。
// 调试和已有文本的场景用这个入口。
func (h *ResumeHandler) AnalyzeText(ctx context.Context, text string) *SyncAnalysisResponse {
	resume := parser.ParseResumeText(text)
	result := analyzer.Analyze(resume)
	matches := h.matcher.GenerateMatches(resume)

	return &SyncAnalysisResponse{
		Resume:   resume,
		Analysis: result,
		Matches:  matches,
	}
}
