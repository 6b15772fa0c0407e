package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/annchain/pairledger/common/format"
	"github.com/annchain/pairledger/common/io"
	"github.com/annchain/pairledger/common/utilfuncs"
	"github.com/spf13/viper"
)

const EnvPrefix = "pairledger"

// p2p.listen_port is read from PAIRLEDGER_P2P_LISTEN_PORT
var envKeyReplacer = strings.NewReplacer(".", "_")

// readConfig merges {configdir}/config.toml and {configdir}/injected.toml when
// present, then lets PAIRLEDGER_* environment variables override them.
func readConfig() {
	configPath := io.FixPrefixPath(viper.GetString("configdir"), "config.toml")
	if io.FileExists(configPath) {
		mergeLocalConfig(configPath)
	} else {
		fmt.Println("config file not found, using defaults:", configPath)
	}

	// load injected config from a deployment tool if any
	injectedPath := io.FixPrefixPath(viper.GetString("configdir"), "injected.toml")
	if io.FileExists(injectedPath) {
		mergeLocalConfig(injectedPath)
	}

	mergeEnvConfig()
	// print running config in console.
	b, err := format.PrettyJson(viper.AllSettings())
	utilfuncs.PanicIfError(err, "dump json")
	fmt.Println(b)
}

func mergeEnvConfig() {
	// env override
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
}

func mergeLocalConfig(configPath string) {
	absPath, err := filepath.Abs(configPath)
	utilfuncs.PanicIfError(err, fmt.Sprintf("Error on parsing config file path: %s", absPath))

	file, err := os.Open(absPath)
	utilfuncs.PanicIfError(err, fmt.Sprintf("Error on opening config file: %s", absPath))
	defer file.Close()

	viper.SetConfigType("toml")
	err = viper.MergeConfig(file)
	utilfuncs.PanicIfError(err, fmt.Sprintf("Error on reading config file: %s", absPath))
}
