package config

const (
	defaultDataDir      = "~/.local/share/mutablerig"
	defaultLogDir       = "~/.local/share/mutablerig/logs"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	defaultFrameRate    = 24.0
	defaultStartFrame   = 1.0
	defaultEndFrame     = 100.0
	defaultSettleEvents = 1
	defaultMaxDeferrals = 8
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Timeline: Timeline{
			FrameRate:    defaultFrameRate,
			StartFrame:   defaultStartFrame,
			EndFrame:     defaultEndFrame,
			SettleEvents: defaultSettleEvents,
		},
		Switcher: Switcher{
			MaxDeferrals: defaultMaxDeferrals,
			RecordPoses:  true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
