package config

// Settings collects the process-wide knobs shared by every frontend.
type Settings struct {
	LevelsFile  string // Optional YAML file replacing the embedded level table
	WatchLevels bool   // Reload LevelsFile when it changes on disk
	BestFile    string // Best-time store location
	Sound       bool   // Initial sound state
	LogFile     string // Log destination for frontends that own the terminal
	LogLevel    string // charmbracelet/log level name
}

// Default locations.
const (
	DefaultBestFile = "vd_best.yaml"
	DefaultLogLevel = "info"
)

// Load reads Settings from the environment.
func Load() Settings {
	return Settings{
		LevelsFile:  GetEnv("VD_LEVELS_FILE", ""),
		WatchLevels: GetEnvBool("VD_WATCH_LEVELS", false),
		BestFile:    GetEnv("VD_BEST_FILE", DefaultBestFile),
		Sound:       GetEnvBool("VD_SOUND", true),
		LogFile:     GetEnv("VD_LOG_FILE", ""),
		LogLevel:    GetEnv("VD_LOG_LEVEL", DefaultLogLevel),
	}
}
