package config

import "time"

const (
	LogLevelDebug   string = "debug"
	LogLevelInfo    string = "info"
	LogLevelWarning string = "warn"
	LogLevelError   string = "error"

	LogFilePath string = "log/exam-simulator.log"

	Version string = "0.1.0"

	EnvPrefix string = "EXAM_"
)

const (
	DefaultDataDir          string        = "data"
	DefaultListenAddr       string        = ":8080"
	DefaultExamDuration     time.Duration = 180 * time.Minute
	DefaultNumericTolerance float64       = 10

	BankExtension string = ".json"
)
