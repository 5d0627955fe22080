package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/signadot/ytree/format"

	"github.com/spf13/viper"
)

// settings are defaults for options not given on the command line, read
// from .yt.yaml in the working or home directory and from YT_* variables.
type settings struct {
	Indent int
	Color  string
	Format format.Format
}

func loadSettings() (*settings, error) {
	v := viper.New()
	v.SetConfigName(".yt")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.SetEnvPrefix("YT")
	v.AutomaticEnv()
	v.SetDefault("indent", 2)
	v.SetDefault("color", "auto")
	v.SetDefault("format", "yaml")

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, fmt.Errorf("could not read settings: %w", err)
		}
	}
	s := &settings{
		Indent: v.GetInt("indent"),
		Color:  v.GetString("color"),
	}
	switch s.Color {
	case "auto", "always", "never":
	default:
		return nil, fmt.Errorf("color setting %q: want auto, always or never", s.Color)
	}
	f, err := format.ParseFormat(v.GetString("format"))
	if err != nil {
		return nil, fmt.Errorf("format setting: %w", err)
	}
	s.Format = f
	return s, nil
}
