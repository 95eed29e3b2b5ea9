package configs

type Config struct {
	// 基础配置
	MonitorInterval string   `json:"monitor_interval" yaml:"monitor_interval"` // 监控轮询间隔
	TrackedTokens   []string `json:"tracked_tokens" yaml:"tracked_tokens"`     // 启动时加入监控的代币地址

	Database Database `json:"database" yaml:"database"`

	// 链上数据源配置
	ChainAPI ChainAPI `json:"chain_api" yaml:"chain_api"`

	// 社交数据源配置
	SocialAPI SocialAPI `json:"social_api" yaml:"social_api"`

	// AI 模型参数
	AIConfig AIConfig `json:"ai_config" yaml:"ai_config"`

	// Binance 备用行情源
	Binance Binance `json:"binance" yaml:"binance"`

	Proxy string `json:"proxy" yaml:"proxy"`
}

type Database struct {
	ConnStr string `json:"conn_str" yaml:"conn_str"` // 数据库连接字符串，为空时使用内存存储
}

type ChainAPI struct {
	BaseURL string `json:"base_url" yaml:"base_url"` // 链上数据API地址
	APIKey  string `json:"api_key" yaml:"api_key"`   // API密钥
}

type SocialAPI struct {
	BaseURL string `json:"base_url" yaml:"base_url"` // 社交数据API地址
	APIKey  string `json:"api_key" yaml:"api_key"`   // API密钥
}

type AIConfig struct {
	APIKey    string `json:"api_key" yaml:"api_key"`       // AI服务API密钥，为空时不做情绪分析
	ModelType string `json:"model_type" yaml:"model_type"` // AI模型类型
}

type Binance struct {
	// 代币地址到交易所交易对的映射，仅对已上所代币生效
	Symbols map[string]string `json:"symbols" yaml:"symbols"`
}
