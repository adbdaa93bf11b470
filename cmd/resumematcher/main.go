package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"resume-match-go/internal/config"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/types"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// 命令行参数定义
var (
	configPath = pflag.String("config", "", "配置文件路径（默认当前目录config.yaml）")
	resumePath = pflag.String("resume", "", "简历文件路径 (.pdf/.docx/.doc/.txt, 必填)")
	jobsPath   = pflag.String("jobs", "", "岗位列表YAML文件路径")
	topK       = pflag.Int("topk", 0, "返回的匹配数量（默认取配置中的default_top_k）")
	parseOnly  = pflag.Bool("parse-only", false, "仅解析简历并输出结构化结果，不做匹配")
)

func main() {
	pflag.Parse()

	if *resumePath == "" {
		fmt.Fprintln(os.Stderr, "错误: 必须通过 --resume 指定简历文件")
		pflag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	ctx := logger.WithContext(context.Background())

	if err := run(ctx, cfg); err != nil {
		logger.Fatal().Err(err).Msg("执行失败")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	// 1. 提取简历文本
	docExtractor := parser.NewLocalDocumentExtractor()
	text, err := docExtractor.ExtractFromFile(ctx, *resumePath)
	if err != nil {
		return fmt.Errorf("提取简历文本失败: %w", err)
	}

	// 2. 组装引擎：嵌入器与语料库共用同一实例
	embedder, err := parser.NewAliyunEmbedder(cfg.Aliyun.APIKey, cfg.Aliyun.Embedding)
	if err != nil {
		return fmt.Errorf("初始化嵌入器失败: %w", err)
	}

	engine, err := processor.NewMatchEngine(processor.Components{
		Extractor: parser.NewResumeExtractor(nil),
		Embedder:  embedder,
	})
	if err != nil {
		return fmt.Errorf("初始化匹配引擎失败: %w", err)
	}

	// 3. 解析简历
	resume := engine.ParseResume(ctx, text)

	if *parseOnly {
		return printJSON(resume)
	}

	// 4. 注册岗位
	if *jobsPath != "" {
		jobs, err := loadJobs(*jobsPath)
		if err != nil {
			return fmt.Errorf("加载岗位文件失败: %w", err)
		}
		for _, job := range jobs {
			if err := engine.AddJob(ctx, job); err != nil {
				return err
			}
		}
		logger.Info().Int("count", len(jobs)).Msg("岗位注册完成")
	}

	// 5. 匹配并输出
	k := *topK
	if k <= 0 {
		k = cfg.Matcher.DefaultTopK
	}
	matches, err := engine.MatchResume(ctx, resume, k)
	if err != nil {
		return err
	}
	return printJSON(matches)
}

// loadJobs 从YAML文件加载岗位列表
func loadJobs(path string) ([]types.JobFields, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var jobs []types.JobFields
	if err := yaml.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("解析岗位YAML失败: %w", err)
	}
	return jobs, nil
}

// printJSON 以缩进JSON输出结果
func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
