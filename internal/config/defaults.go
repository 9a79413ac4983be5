package config

const (
	defaultConfigPath = "~/.config/voiceswitch/config.toml"
	projectConfigName = "voiceswitch.toml"
	defaultBackupDir  = "~/.local/share/voiceswitch/voice_backups"
	defaultLogDir     = "~/.local/share/voiceswitch/logs"
	defaultSteamAppID = "2807960"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

func defaultDataSubpath() []string {
	return []string{"Data", "Win32"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			BackupDir: defaultBackupDir,
			LogDir:    defaultLogDir,
		},
		Steam: Steam{
			AppID:       defaultSteamAppID,
			DataSubpath: defaultDataSubpath(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
