package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
	"github.com/rs/zerolog"

	"resume-analyzer-go/internal/logger"
)

// ErrDocumentParse 文档无法解码为文本时的哨兵错误。
// 提取失败是整条流水线中唯一的致命错误，下游各阶段对缺失输入都有降级行为。
var ErrDocumentParse = errors.New("document parse failed")

// TextExtractor 文本提取器接口，供处理流程注入
type TextExtractor interface {
	ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, error)
	ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string) (string, error)
}

// EinoPDFTextExtractor 使用 Eino PDF Parser 提取文本
type EinoPDFTextExtractor struct {
	parser *pdf.PDFParser
	logger zerolog.Logger
}

// 接口实现检查
var _ TextExtractor = (*EinoPDFTextExtractor)(nil)

// NewEinoPDFTextExtractor 初始化 Eino PDF 文本提取器。
// 按页面分割解析，页面文本用换行符拼接，保证分页处的行边界不丢失。
func NewEinoPDFTextExtractor(ctx context.Context) (*EinoPDFTextExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Eino PDF parser: %w", err)
	}

	return &EinoPDFTextExtractor{
		parser: p,
		logger: logger.Logger.With().Str("component", "pdf_extractor").Logger(),
	}, nil
}

// ExtractTextFromReader 从 io.Reader 中提取PDF全文
func (e *EinoPDFTextExtractor) ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string) (string, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	docs, err := e.parser.Parse(ctx, reader,
		einoParser.WithURI(uri),
	)

	duration := time.Since(startTime)
	if err != nil {
		e.logger.Error().Err(err).Str("uri", uri).Dur("duration", duration).Msg("PDF解析失败")
		return "", fmt.Errorf("%w: uri=%s: %v", ErrDocumentParse, uri, err)
	}

	if len(docs) == 0 {
		e.logger.Warn().Str("uri", uri).Msg("PDF解析无结果")
		return "", fmt.Errorf("%w: uri=%s: parser returned no documents", ErrDocumentParse, uri)
	}

	// 逐页拼接，页面间补换行符
	pages := make([]string, 0, len(docs))
	for _, doc := range docs {
		pages = append(pages, doc.Content)
	}
	fullText := strings.Join(pages, "\n")

	e.logger.Info().
		Str("uri", uri).
		Int("pages", len(docs)).
		Int("text_length", len(fullText)).
		Dur("duration", duration).
		Msg("PDF提取完成")

	return fullText, nil
}

// ExtractTextFromBytes 从字节数组提取PDF全文
func (e *EinoPDFTextExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, error) {
	return e.ExtractTextFromReader(ctx, bytes.NewReader(data), uri)
}
