package config

// Application constants
const (
	AppName    = "Survey Pulse"
	AppVersion = "1.0.0"

	// Text analysis engines
	TextEngineLexicon = "lexicon"
	TextEngineBasic   = "basic"

	DefaultMaxKeywords = 10

	// Export limits
	MaxColumnWidth = 50

	// Upstream document layout under SourceConfig.DataDir
	QuestionnairesDirName = "questionnaires"
	ResponsesDirName      = "responses"
)
