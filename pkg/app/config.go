package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"locatrack.io/locatrack/pkg/log"
)

const configFlagName = "config"

// envKeyReplacer maps nested config keys to env var names, e.g.
// backend.url -> LOCATRACK_BACKEND_URL.
var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

func addConfigFlag(basename string, fs *pflag.FlagSet) {
	fs.StringP(configFlagName, "c", "", fmt.Sprintf(
		"Path to the %s configuration file (default: search ./, $HOME/.locatrack, /etc/locatrack)", basename))
}

// loadConfig reads the config file, binds LOCATRACK_* env vars and keeps
// viper updated when the file changes on disk. A missing config file is
// not an error; an unreadable or malformed one is.
func loadConfig(basename string, fs *pflag.FlagSet) error {
	if cfgFile, _ := fs.GetString(configFlagName); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".locatrack"))
		}
		viper.AddConfigPath("/etc/locatrack")
		viper.SetConfigName(basename)
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("LOCATRACK")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.BindPFlags(fs); err != nil {
		return err
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}

		return fmt.Errorf("failed to read configuration file: %w", err)
	}

	return nil
}

var configChangeHooks []func()

// OnConfigChange registers a callback invoked after the config file is
// re-read and unmarshalled. Register hooks before App.Run.
func OnConfigChange(fn func()) {
	configChangeHooks = append(configChangeHooks, fn)
}

// watchConfig re-unmarshals the options struct and runs the registered
// hooks whenever the config file changes on disk.
func (a *App) watchConfig() {
	if viper.ConfigFileUsed() == "" {
		return
	}

	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Info("configuration file changed", "file", e.Name)
		if err := viper.Unmarshal(a.options); err != nil {
			log.Error(err, "failed to reload configuration; keeping previous values")
			return
		}
		for _, fn := range configChangeHooks {
			fn()
		}
	})
}
