package structures

import "time"

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type BackendConfig struct {
	BaseURL   string        `yaml:"baseUrl" validate:"required"`
	Transport string        `yaml:"transport" validate:"required|in:dispatch,path,rpc"`
	RPCPath   string        `yaml:"rpcPath"`
	Timeout   time.Duration `yaml:"timeout" validate:"required|min:1"`
	UserID    string        `yaml:"userId" validate:"required"`
	UserName  string        `yaml:"userName"`
}

type InsightsConfig struct {
	CommonEmotionsDays       int  `yaml:"commonEmotionsDays" validate:"required|min:1"`
	TrendLookbackDays        int  `yaml:"trendLookbackDays" validate:"required|min:1"`
	TriggerLookbackDays      int  `yaml:"triggerLookbackDays" validate:"required|min:1"`
	BreathingDurationSeconds int  `yaml:"breathingDurationSeconds" validate:"required|min:1"`
	PartialResults           bool `yaml:"partialResults"`
}

type MonitorConfig struct {
	Interval time.Duration `yaml:"interval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	Backend   BackendConfig  `yaml:"backend"`
	Insights  InsightsConfig `yaml:"insights"`
	WebServer Server         `yaml:"webServer"`
	Monitor   MonitorConfig  `yaml:"monitor"`
	Logger    LoggerConfig   `yaml:"logger"`
	Cache     CacheConfig    `yaml:"cache"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}
