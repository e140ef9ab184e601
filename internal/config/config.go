package config

import (
	"github.com/spf13/viper"

	"geosplit/internal/quadtree"
)

// Config holds all configuration for the application, read from an app.env
// file or the environment.
type Config struct {
	ServerAddress string  `mapstructure:"SERVER_ADDRESS"`
	DBSource      string  `mapstructure:"DB_SOURCE"`
	OutputDir     string  `mapstructure:"OUTPUT_DIR"`
	LeafCapacity  int     `mapstructure:"LEAF_CAPACITY"`
	MinLatitude   float64 `mapstructure:"MIN_LATITUDE"`
	MaxLatitude   float64 `mapstructure:"MAX_LATITUDE"`
	MinLongitude  float64 `mapstructure:"MIN_LONGITUDE"`
	MaxLongitude  float64 `mapstructure:"MAX_LONGITUDE"`
}

// Bounds returns the configured root rectangle.
func (c Config) Bounds() quadtree.Bounds {
	return quadtree.Bounds{
		MinLat: c.MinLatitude,
		MaxLat: c.MaxLatitude,
		MinLon: c.MinLongitude,
		MaxLon: c.MaxLongitude,
	}
}

// LoadConfig reads configuration from the app.env file in path, with
// environment variables taking precedence.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		return
	}

	err = v.Unmarshal(&config)
	return
}
