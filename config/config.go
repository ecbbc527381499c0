package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode    string `mapstructure:"mode"`
	Catalog struct {
		CSVPath      string `mapstructure:"csvPath"`
		ArtifactPath string `mapstructure:"artifactPath"`
	} `mapstructure:"catalog"`
	Recommender struct {
		RadiusKm    float64       `mapstructure:"radiusKm"`
		DefaultTopN int           `mapstructure:"defaultTopN"`
		MaxTopN     int           `mapstructure:"maxTopN"`
		PerNight    int           `mapstructure:"perNight"`
		CacheTTL    time.Duration `mapstructure:"cacheTTL"`
		Popularity  struct {
			Similarity   float64 `mapstructure:"similarity"`
			Rating       float64 `mapstructure:"rating"`
			ReviewVolume float64 `mapstructure:"reviewVolume"`
		} `mapstructure:"popularity"`
		Category struct {
			Match      float64 `mapstructure:"match"`
			Similarity float64 `mapstructure:"similarity"`
		} `mapstructure:"category"`
	} `mapstructure:"recommender"`
	Server struct {
		HTTPPort    string        `mapstructure:"HTTPPort"`
		MetricsPort string        `mapstructure:"metricsPort"`
		Timeout     time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
