package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"
)

type Config struct {
	Bank   BankConfig
	Build  BuildConfig
	Tools  ToolsConfig
	Logger LoggerConfig
}

// BankConfig locates the question bank and quiz definitions on disk.
type BankConfig struct {
	Dir     string `yaml:"dir"`
	QuizDir string `yaml:"quiz_dir"`
}

// BuildConfig controls artifact output.
type BuildConfig struct {
	OutDir string `yaml:"out_dir"`
	Seed   int64  `yaml:"seed"`
}

// ToolsConfig names the external compilers the build targets hand off to.
// The pipeline never invokes them itself; the cmd layer reports their
// failures under a distinct error code.
type ToolsConfig struct {
	Pandoc  string `yaml:"pandoc"`
	Typst   string `yaml:"typst"`
	LaTeXMk string `yaml:"latexmk"`
}

type LoggerConfig struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("bank.dir", "qbank")
	viper.SetDefault("bank.quiz_dir", "quizzes")
	viper.SetDefault("build.out_dir", "build")
	viper.SetDefault("build.seed", 42)
	viper.SetDefault("tools.pandoc", "pandoc")
	viper.SetDefault("tools.typst", "typst")
	viper.SetDefault("tools.latexmk", "latexmk")
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("logger.level", "info")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// The tools run fine on defaults; only a malformed file is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Bank: BankConfig{
			Dir:     viper.GetString("bank.dir"),
			QuizDir: viper.GetString("bank.quiz_dir"),
		},
		Build: BuildConfig{
			OutDir: viper.GetString("build.out_dir"),
			Seed:   viper.GetInt64("build.seed"),
		},
		Tools: ToolsConfig{
			Pandoc:  viper.GetString("tools.pandoc"),
			Typst:   viper.GetString("tools.typst"),
			LaTeXMk: viper.GetString("tools.latexmk"),
		},
		Logger: LoggerConfig{
			Env:   viper.GetString("logger.env"),
			Level: viper.GetString("logger.level"),
		},
	}

	// Override with environment variables if set
	if dir := os.Getenv("QUIZBANK_DIR"); dir != "" {
		config.Bank.Dir = dir
	}
	if dir := os.Getenv("QUIZBANK_QUIZ_DIR"); dir != "" {
		config.Bank.QuizDir = dir
	}
	if dir := os.Getenv("QUIZBANK_OUT_DIR"); dir != "" {
		config.Build.OutDir = dir
	}
	if seed := os.Getenv("QUIZBANK_SEED"); seed != "" {
		n, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid QUIZBANK_SEED: %w", err)
		}
		config.Build.Seed = n
	}
	if env := os.Getenv("QUIZBANK_ENV"); env != "" {
		config.Logger.Env = env
	}
	if level := os.Getenv("QUIZBANK_LOG_LEVEL"); level != "" {
		config.Logger.Level = level
	}

	return config, nil
}
