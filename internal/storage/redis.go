package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"resume-analyzer-go/internal/config"
	"resume-analyzer-go/internal/constants"
	"resume-analyzer-go/internal/types"
)

// ErrNotFound is returned when a key is not found in Redis.
// It wraps the underlying redis.Nil error for abstraction.
var ErrNotFound = redis.Nil

// Redis wraps the Redis client
type Redis struct {
	Client *redis.Client
	config *config.RedisConfig
}

// NewRedisAdapter creates a new Redis client connection
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	opt := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		// 连接池设置
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		// 超时设置
		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,

		// 重试设置
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: time.Duration(cfg.MinRetryBackoffMS) * time.Millisecond,
		MaxRetryBackoff: time.Duration(cfg.MaxRetryBackoffMS) * time.Millisecond,

		// 连接生命周期
		ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute,
		ConnMaxIdleTime: time.Duration(cfg.ConnMaxIdleTimeMinutes) * time.Minute,
	}

	client := redis.NewClient(opt)

	// Ping to check connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	return &Redis{
		Client: client,
		config: cfg,
	}, nil
}

// Close closes the Redis client connection
func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// Ping checks the Redis connection
func (r *Redis) Ping(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	return r.Client.Ping(ctx).Err()
}

// GetMD5ExpireDuration 返回配置的MD5去重记录过期时间
func (r *Redis) GetMD5ExpireDuration() time.Duration {
	days := r.config.MD5RecordExpireDays
	if days <= 0 {
		days = 365
	}
	return time.Duration(days) * 24 * time.Hour
}

// AddRawFileMD5 添加原始文件MD5到去重集合并设置过期时间
func (r *Redis) AddRawFileMD5(ctx context.Context, md5Hex string) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	pipe := r.Client.Pipeline()
	pipe.SAdd(ctx, constants.KeyFileMD5Set, md5Hex)
	// ExpireNX: 只在集合尚无过期时间时设置，避免每次写入都顺延
	pipe.ExpireNX(ctx, constants.KeyFileMD5Set, r.GetMD5ExpireDuration())
	_, err := pipe.Exec(ctx)
	return err
}

// CheckRawFileMD5Exists 检查原始文件MD5是否已在去重集合中
func (r *Redis) CheckRawFileMD5Exists(ctx context.Context, md5Hex string) (bool, error) {
	if r.Client == nil {
		return false, fmt.Errorf("redis client is not initialized")
	}
	return r.Client.SIsMember(ctx, constants.KeyFileMD5Set, md5Hex).Result()
}

// CacheParsedResume 缓存结构化简历
func (r *Redis) CacheParsedResume(ctx context.Context, submissionUUID string, resume *types.ParsedResume) error {
	return r.setJSON(ctx, fmt.Sprintf(constants.KeyParsedResume, submissionUUID), resume)
}

// GetCachedParsedResume 读取缓存的结构化简历，未命中返回ErrNotFound
func (r *Redis) GetCachedParsedResume(ctx context.Context, submissionUUID string) (*types.ParsedResume, error) {
	var resume types.ParsedResume
	if err := r.getJSON(ctx, fmt.Sprintf(constants.KeyParsedResume, submissionUUID), &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// CacheAnalysisResult 缓存分析结果
func (r *Redis) CacheAnalysisResult(ctx context.Context, submissionUUID string, result *types.AnalysisResult) error {
	return r.setJSON(ctx, fmt.Sprintf(constants.KeyAnalysisResult, submissionUUID), result)
}

// GetCachedAnalysisResult 读取缓存的分析结果，未命中返回ErrNotFound
func (r *Redis) GetCachedAnalysisResult(ctx context.Context, submissionUUID string) (*types.AnalysisResult, error) {
	var result types.AnalysisResult
	if err := r.getJSON(ctx, fmt.Sprintf(constants.KeyAnalysisResult, submissionUUID), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CacheJobMatches 缓存岗位匹配结果
func (r *Redis) CacheJobMatches(ctx context.Context, submissionUUID string, matches []types.JobMatch) error {
	return r.setJSON(ctx, fmt.Sprintf(constants.KeyJobMatches, submissionUUID), matches)
}

// GetCachedJobMatches 读取缓存的岗位匹配结果，未命中返回ErrNotFound
func (r *Redis) GetCachedJobMatches(ctx context.Context, submissionUUID string) ([]types.JobMatch, error) {
	var matches []types.JobMatch
	if err := r.getJSON(ctx, fmt.Sprintf(constants.KeyJobMatches, submissionUUID), &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// setJSON 序列化后写入，统一使用缓存TTL
func (r *Redis) setJSON(ctx context.Context, key string, value interface{}) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化缓存值失败 key=%s: %w", key, err)
	}
	return r.Client.Set(ctx, key, data, constants.ResumeCacheTTL).Err()
}

// getJSON 读取并反序列化，键不存在时透传ErrNotFound
func (r *Redis) getJSON(ctx context.Context, key string, out interface{}) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	data, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("反序列化缓存值失败 key=%s: %w", key, err)
	}
	return nil
}
