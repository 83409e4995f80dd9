package config

const (
	defaultInputDir              = "~/ExperimentalDataProject/ExperimentalData"
	defaultOrganizedDir          = "~/ExperimentalDataProject/OrganizedData"
	defaultTxtDir                = "~/ExperimentalDataProject/TxtData"
	defaultLogDir                = "~/.local/share/cellsort/logs"
	defaultStateDir              = "~/.local/share/cellsort"
	defaultCellID                = "UNKNOWN"
	defaultTestSpec              = "T750Air100V07"
	defaultDate                  = "20241218"
	defaultOperatingCondition    = "OC"
	defaultWatchDebounceMillis   = 1500
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultManifestRetentionDays = 90
)

var defaultSkipExtensions = []string{".jpg", ".png", ".jpeg"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:     defaultInputDir,
			OrganizedDir: defaultOrganizedDir,
			TxtDir:       defaultTxtDir,
			LogDir:       defaultLogDir,
			StateDir:     defaultStateDir,
		},
		Classify: Classify{
			DefaultCellID:             defaultCellID,
			DefaultTestSpec:           defaultTestSpec,
			DefaultDate:               defaultDate,
			DefaultOperatingCondition: defaultOperatingCondition,
		},
		Organize: Organize{
			SkipExtensions:   append([]string(nil), defaultSkipExtensions...),
			Convert:          true,
			CleanupEmptyDirs: true,
			Overwrite:        true,
		},
		Watch: Watch{
			DebounceMillis: defaultWatchDebounceMillis,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultManifestRetentionDays,
		},
	}
}
