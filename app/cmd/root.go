// Copyright © 2019 Annchain Authors <EMAIL ADDRESS>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"os"

	"github.com/annchain/pairledger/common/goroutine"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pairledger",
	Short: "pairledger: a hash-linked ledger replicated between two peers",
	Long: `pairledger keeps an append-only chain of hash-linked blocks and mirrors it
with exactly one configured peer. Lines typed on stdin become new blocks.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer goroutine.DumpStack(true)
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("Fatal error occurred. Program will exit")
		os.Exit(1)
	}
}

func init() {
	// folders
	rootCmd.PersistentFlags().StringP("configdir", "c", "config", "Folder for config")
	rootCmd.PersistentFlags().StringP("logdir", "l", "log", "Folder for log")

	// log
	rootCmd.PersistentFlags().BoolP("log_stdout", "s", true, "Whether the log will be printed to stdout")
	rootCmd.PersistentFlags().BoolP("log_file", "f", false, "Whether the log will be written to logdir")
	rootCmd.PersistentFlags().StringP("log_level", "v", "info", "Logging verbosity, possible values:[panic, fatal, error, warn, info, debug, trace]")
	rootCmd.PersistentFlags().BoolP("log_line_number", "n", false, "Whether the log will contain line number")
	rootCmd.PersistentFlags().BoolP("multifile_by_level", "m", false, "multifile_by_level")
	rootCmd.PersistentFlags().BoolP("multifile_by_module", "M", false, "multifile_by_module")

	_ = viper.BindPFlag("configdir", rootCmd.PersistentFlags().Lookup("configdir"))
	_ = viper.BindPFlag("logdir", rootCmd.PersistentFlags().Lookup("logdir"))

	_ = viper.BindPFlag("log.stdout", rootCmd.PersistentFlags().Lookup("log_stdout"))
	_ = viper.BindPFlag("log.file", rootCmd.PersistentFlags().Lookup("log_file"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log_level"))
	_ = viper.BindPFlag("log.line_number", rootCmd.PersistentFlags().Lookup("log_line_number"))
	_ = viper.BindPFlag("multifile_by_level", rootCmd.PersistentFlags().Lookup("multifile_by_level"))
	_ = viper.BindPFlag("multifile_by_module", rootCmd.PersistentFlags().Lookup("multifile_by_module"))
}
