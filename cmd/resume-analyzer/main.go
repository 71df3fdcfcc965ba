package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"

	"resume-analyzer-go/internal/config"
	"resume-analyzer-go/internal/handler"
	appLogger "resume-analyzer-go/internal/logger"
	"resume-analyzer-go/internal/matcher"
	"resume-analyzer-go/internal/parser"
	"resume-analyzer-go/internal/router"
	"resume-analyzer-go/internal/storage"
	"resume-analyzer-go/pkg/ratelimit"
)

func main() {
	var configPath string
	var initConfigPath string
	pflag.StringVarP(&configPath, "config", "c", "internal/config/config.yaml", "Path to config file")
	pflag.StringVar(&initConfigPath, "init-config", "", "Write a sample config file to the given path and exit")
	pflag.Parse()

	if initConfigPath != "" {
		if err := config.CreateSampleConfig(initConfigPath); err != nil {
			glog.Fatalf("生成示例配置文件失败: %v", err)
		}
		glog.Infof("示例配置文件已生成: %s", initConfigPath)
		return
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		glog.Fatalf("加载配置失败: %v", err)
	}

	initLogger(cfg)
	glog.Info("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		glog.Fatalf("初始化存储失败: %v", err)
	}
	defer storageManager.Close()
	glog.Info("存储服务初始化成功")

	pdfExtractor, err := parser.NewEinoPDFTextExtractor(ctx)
	if err != nil {
		glog.Fatalf("创建Eino PDF提取器失败: %v", err)
	}
	glog.Info("使用Eino PDF解析器")

	// 匹配分数的抖动源。配置了种子时输出可复现，方便排查和测试
	var jitterRand *rand.Rand
	if cfg.Analyzer.MatchJitterSeed != 0 {
		jitterRand = rand.New(rand.NewSource(cfg.Analyzer.MatchJitterSeed))
		glog.Infof("岗位匹配抖动使用固定种子: %d", cfg.Analyzer.MatchJitterSeed)
	}
	jobMatcher := matcher.NewMatcher(cfg.Analyzer.MaxJobMatches, jitterRand)

	resumeHandler := handler.NewResumeHandler(cfg, storageManager, pdfExtractor, jobMatcher)
	glog.Info("ResumeHandler初始化成功")

	go func() {
		if storageManager.RabbitMQ == nil {
			glog.Warn("RabbitMQ未配置, 跳过上传消费者启动, 仅同步分析接口可用")
			return
		}
		if err := resumeHandler.StartResumeUploadConsumer(context.Background()); err != nil {
			glog.Fatalf("启动简历上传消费者失败: %v", err)
		}
		glog.Info("简历上传消费者已启动")
	}()

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	uploadLimiter := ratelimit.NewTokenBucket(cfg.Server.UploadRateQPM, 0)
	router.RegisterRoutes(h, resumeHandler, uploadLimiter)
	glog.Info("HTTP路由注册成功")

	glog.Infof("HTTP 服务器启动中，监听地址: %s", cfg.Server.Address)

	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Fatalf("服务器关闭失败: %v", err)
	}
	glog.Info("优雅退出完成")
}

// initLogger 初始化应用日志和Hertz的日志适配
func initLogger(cfg *config.Config) {
	appLogger.Init(appLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	// 让Hertz框架日志走同一个zerolog实例
	glog.SetLogger(hertzadapter.From(appLogger.Logger))
}
