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
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/annchain/pairledger/common/goroutine"
	"github.com/annchain/pairledger/common/utilfuncs"
	"github.com/annchain/pairledger/node"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type runArgs struct {
	ListenPort int
	PeerHost   string
	PeerPort   int
}

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <listenPort> <peerHost> <peerPort>",
	Short: "Start a node paired with one peer",
	Long: `Start a node that listens on listenPort, syncs once with peerHost:peerPort
and then turns every line read from stdin into a block. Type exit to stop.`,
	Example: "  pairledger run 8080 localhost 8081",
	Args: func(cmd *cobra.Command, args []string) error {
		_, err := parseRunArgs(args)
		return err
	},
	Run: func(cmd *cobra.Command, args []string) {
		// init logs and other facilities before the node starts
		readConfig()
		initLogger()

		ra, err := parseRunArgs(args)
		utilfuncs.PanicIfError(err, "invalid arguments")
		ra.apply()
		if noSync, _ := cmd.Flags().GetBool("no_sync"); noSync {
			viper.Set("sync.enabled", false)
		}

		config, err := node.ConfigFromViper()
		utilfuncs.PanicIfError(err, "invalid node config")

		pid := os.Getpid()
		log.WithField("with id ", pid).Info("Node Starting")

		console := node.NewConsole(os.Stdin)
		n, err := node.NewNode(config, console)
		if err != nil {
			log.WithError(err).Fatal("cannot start node")
		}
		n.Start()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		produced := make(chan error, 1)
		goroutine.New(func() {
			produced <- n.Produce(ctx)
		})

		// prevent sudden stop. Do your clean up here
		var gracefulStop = make(chan os.Signal, 1)
		signal.Notify(gracefulStop, syscall.SIGTERM, syscall.SIGINT)

		select {
		case sig := <-gracefulStop:
			log.Warnf("caught sig: %+v", sig)
			log.Warn("Exiting... Please do no kill me")
		case err := <-produced:
			if err != nil {
				log.WithError(err).Error("producer stopped")
			}
		}
		cancel()
		console.Stop()
		n.Stop()
	},
}

func parseRunArgs(args []string) (runArgs, error) {
	var ra runArgs
	if len(args) != 3 {
		return ra, errors.Errorf("expected 3 arguments <listenPort> <peerHost> <peerPort>, got %d", len(args))
	}
	var err error
	if ra.ListenPort, err = parsePort(args[0]); err != nil {
		return ra, errors.Wrap(err, "listenPort")
	}
	if ra.PeerHost = args[1]; ra.PeerHost == "" {
		return ra, errors.New("peerHost is empty")
	}
	if ra.PeerPort, err = parsePort(args[2]); err != nil {
		return ra, errors.Wrap(err, "peerPort")
	}
	return ra, nil
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Errorf("%q is not a number", s)
	}
	if port < 1 || port > 65535 {
		return 0, errors.Errorf("%d out of range [1, 65535]", port)
	}
	return port, nil
}

// positional arguments override every other config source
func (ra runArgs) apply() {
	viper.Set("p2p.listen_port", ra.ListenPort)
	viper.Set("p2p.peer_host", ra.PeerHost)
	viper.Set("p2p.peer_port", ra.PeerPort)
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("rpc", false, "Serve the read-only http api")
	runCmd.Flags().Int("rpc_port", 8000, "Port of the http api")
	runCmd.Flags().Bool("no_sync", false, "Skip the startup sync with the peer")

	_ = viper.BindPFlag("rpc.enabled", runCmd.Flags().Lookup("rpc"))
	_ = viper.BindPFlag("rpc.port", runCmd.Flags().Lookup("rpc_port"))
}
