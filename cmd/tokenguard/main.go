package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	binanceProvider "github.com/songzhibin97/tokenguard/internal/providers/binance"
	"github.com/songzhibin97/tokenguard/internal/providers/failover"
	"github.com/songzhibin97/tokenguard/internal/providers/social"
	"github.com/songzhibin97/tokenguard/internal/providers/solscan"

	"github.com/songzhibin97/tokenguard/internal/ai"
	"github.com/songzhibin97/tokenguard/internal/ai/openai"
	"github.com/songzhibin97/tokenguard/internal/configs"
	"github.com/songzhibin97/tokenguard/internal/risk"
	"github.com/songzhibin97/tokenguard/internal/tracking"
)

var (
	flagconf    string
	flagAnalyze string

	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   true,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
)

func init() {
	flag.StringVar(&flagconf, "conf", "../configs", "config path, eg: -conf config.json")
	flag.StringVar(&flagAnalyze, "analyze", "", "analyze a single token and exit, eg: -analyze <address>")
}

func main() {
	flag.Parse()

	// 加载配置
	config := &configs.Config{}
	configFile, err := os.ReadFile(flagconf)
	if err != nil {
		log.Error("Error reading config file", "err", err)
	}

	if err := json.Unmarshal(configFile, config); err != nil {
		log.Error("Error parsing config file", "err", err)
		return
	}

	log.Debug("Loaded config", "config", config)

	if config.Proxy != "" {
		_ = os.Setenv("HTTP_PROXY", config.Proxy)
		_ = os.Setenv("HTTPS_PROXY", config.Proxy)
		log.Debug("set proxy ok", "proxy", config.Proxy)
	}

	// 初始化各个组件
	chain := failover.NewChainProvider([]failover.Source{
		solscan.NewSolscanProvider(config.ChainAPI.BaseURL, config.ChainAPI.APIKey),
		binanceProvider.NewMarketProvider(config.Binance.Symbols),
	}, log)

	log.Debug("init chain provider")

	var sentiment ai.SentimentAnalyzer
	if config.AIConfig.APIKey != "" {
		sentiment = openai.NewOpenAIAnalyzer(config.AIConfig.APIKey, config.AIConfig.ModelType)
		log.Debug("init sentiment analyzer")
	}

	socialProvider := social.NewProvider(config.SocialAPI.BaseURL, config.SocialAPI.APIKey, sentiment, log)

	log.Debug("init social provider")

	var store tracking.Store
	if config.Database.ConnStr != "" {
		pg, err := tracking.NewPostgresStore(config.Database.ConnStr)
		if err != nil {
			log.Error("Error creating store", "err", err)
			return
		}
		defer pg.Close()
		store = pg
	} else {
		store = tracking.NewMemoryStore()
	}

	log.Debug("init store")

	analyzer := risk.NewAnalyzer(chain, socialProvider, log)

	log.Debug("init analyzer")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 单次分析模式
	if flagAnalyze != "" {
		if err := analyzeOnce(ctx, analyzer, store, flagAnalyze); err != nil {
			log.Error("Analysis error", "token", flagAnalyze, "err", err)
			os.Exit(1)
		}
		return
	}

	for _, address := range config.TrackedTokens {
		if err := store.TrackToken(ctx, address); err != nil {
			log.Error("Error tracking token", "token", address, "err", err)
			return
		}
	}

	interval, err := time.ParseDuration(config.MonitorInterval)
	if err != nil {
		interval = risk.DefaultMonitorInterval
	}

	monitor := risk.NewMonitor(analyzer, store, log, interval)
	monitor.Start(ctx)
}

// analyzeOnce 执行一次完整分析并输出结果
func analyzeOnce(ctx context.Context, analyzer *risk.Analyzer, store tracking.Store, address string) error {
	analysis, err := analyzer.AnalyzeToken(ctx, address)
	if err != nil {
		return err
	}

	if err := store.SaveAnalysis(ctx, analysis); err != nil {
		log.Error("Error saving analysis", "token", address, "err", err)
	}

	out, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	return nil
}
