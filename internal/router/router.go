package router

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"gorm.io/gorm"

	"resume-analyzer-go/internal/handler"
	"resume-analyzer-go/pkg/ratelimit"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, resumeHandler *handler.ResumeHandler, uploadLimiter *ratelimit.TokenBucket) {
	api := h.Group("/api/v1")

	api.POST("/resume/upload", func(c context.Context, ctx *app.RequestContext) {
		// 上传是最重的入口，超过限流速率直接拒绝
		if uploadLimiter != nil && !uploadLimiter.Allow() {
			ctx.JSON(consts.StatusTooManyRequests, utils.H{"error": "请求过于频繁，请稍后重试"})
			return
		}

		// 获取上传的文件
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}

		// 获取来源渠道
		sourceChannel := ctx.PostForm("source_channel")
		if sourceChannel == "" {
			sourceChannel = "web_upload" // 默认值
		}

		// 打开文件
		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		// 处理上传
		resp, err := resumeHandler.HandleResumeUpload(
			c,
			file,
			fileHeader.Size,
			fileHeader.Filename,
			sourceChannel,
		)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}

		ctx.JSON(consts.StatusOK, resp)
	})

	// 同步分析已有文本，不落库
	api.POST("/resume/analyze", func(c context.Context, ctx *app.RequestContext) {
		var req struct {
			Text string `json:"text"`
		}
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体必须是JSON且包含text字段"})
			return
		}
		if req.Text == "" {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "text字段不能为空"})
			return
		}

		ctx.JSON(consts.StatusOK, resumeHandler.AnalyzeText(c, req.Text))
	})

	// 查询提交状态
	api.GET("/resume/:uuid", func(c context.Context, ctx *app.RequestContext) {
		submissionUUID := ctx.Param("uuid")
		resp, err := resumeHandler.GetSubmissionStatus(c, submissionUUID)
		if err != nil {
			respondLookupError(ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	// 查询结构化解析结果
	api.GET("/resume/:uuid/parsed", func(c context.Context, ctx *app.RequestContext) {
		submissionUUID := ctx.Param("uuid")
		resume, err := resumeHandler.GetParsedResume(c, submissionUUID)
		if err != nil {
			respondLookupError(ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, resume)
	})

	// 查询分析结果
	api.GET("/resume/:uuid/analysis", func(c context.Context, ctx *app.RequestContext) {
		submissionUUID := ctx.Param("uuid")
		result, err := resumeHandler.GetAnalysisResult(c, submissionUUID)
		if err != nil {
			respondLookupError(ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, result)
	})

	// 查询岗位匹配结果
	api.GET("/resume/:uuid/matches", func(c context.Context, ctx *app.RequestContext) {
		submissionUUID := ctx.Param("uuid")
		matches, err := resumeHandler.GetJobMatches(c, submissionUUID)
		if err != nil {
			respondLookupError(ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, matches)
	})

	// 添加健康检查
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}

// respondLookupError 把查询错误映射成HTTP状态码
func respondLookupError(ctx *app.RequestContext, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(consts.StatusNotFound, utils.H{"error": "记录不存在"})
		return
	}
	ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
}
