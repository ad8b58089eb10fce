package model

// Config holds the application settings loaded by the config package.
type Config struct {
	DatabaseType string `json:"database_type" mapstructure:"database_type"`
	DatabaseDir  string `json:"database_dir" mapstructure:"database_dir"`
	DatabaseFile string `json:"database_file" mapstructure:"database_file"`
	DatabaseDSN  string `json:"database_dsn" mapstructure:"database_dsn"`
	LogFolder    string `json:"log_folder" mapstructure:"log_folder"`
	CommandLog   string `json:"command_log" mapstructure:"command_log"`
	ErrorLog     string `json:"error_log" mapstructure:"error_log"`
	InfoLog      string `json:"info_log" mapstructure:"info_log"`
	LogLevel     string `json:"log_level" mapstructure:"log_level"`
	HistoryFile  string `json:"history_file" mapstructure:"history_file"`
	HTTPAddr     string `json:"http_addr" mapstructure:"http_addr"`
	ExportFile   string `json:"export_file" mapstructure:"export_file"`
	ExportFormat string `json:"export_format" mapstructure:"export_format"`
}
