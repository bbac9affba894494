package cmd

import (
	"errors"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "intern-matcher"
	envPrefix = "INTERN_MATCHER"
)

type Config struct {
	Database string          `mapstructure:"database"`
	Snapshot string          `mapstructure:"snapshot"`
	TopN     int             `mapstructure:"top-n"`
	Matching *MatchingConfig `mapstructure:"matching"`
	Import   *ImportConfig   `mapstructure:"import"`
}

type MatchingConfig struct {
	Stem bool `mapstructure:"stem"`
}

type ImportConfig struct {
	Internships string `mapstructure:"internships"`
	Students    string `mapstructure:"students"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "intern-matcher ranks internships for students and students for internships",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is intern-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("database", "internship_matcher.db", "sqlite database file")
	rootCmd.PersistentFlags().String("snapshot", "vectorizer.json", "fitted model snapshot file")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))
	viper.BindPFlag("snapshot", rootCmd.PersistentFlags().Lookup("snapshot"))

	viper.SetDefault("top-n", 5)
	viper.SetDefault("matching.stem", false)
	viper.SetDefault("import.internships", "data/internships.csv")
	viper.SetDefault("import.students", "data/students.csv")
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Config file is optional, but a broken one is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.Matching == nil {
		config.Matching = &MatchingConfig{}
	}
	if config.Import == nil {
		config.Import = &ImportConfig{}
	}

	return config, nil
}
