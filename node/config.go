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
package node

import (
	"fmt"
	"time"

	"github.com/annchain/pairledger/ledger"
	"github.com/annchain/pairledger/transport"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	ListenPort  int
	PeerAddress string

	Transport transport.Config
	Chain     ledger.ChainConfig
	Listener  ListenerConfig

	SyncEnabled bool
	// SyncTimeout bounds the whole startup exchange. A peer that is bound
	// but not serving yet holds the reply back until this expires.
	SyncTimeout time.Duration

	RpcEnabled bool
	RpcPort    int
}

func DefaultConfig() Config {
	return Config{
		Transport:   transport.DefaultConfig(),
		Listener:    DefaultListenerConfig(),
		SyncEnabled: true,
		SyncTimeout: time.Second * 3,
		RpcPort:     8000,
	}
}

// ListenAddress is where the PeerListener binds. All interfaces.
func (c Config) ListenAddress() string {
	return fmt.Sprintf(":%d", c.ListenPort)
}

func (c Config) Validate() error {
	if c.ListenPort < 1 || c.ListenPort > 65535 {
		return fmt.Errorf("listen port %d out of range", c.ListenPort)
	}
	if c.PeerAddress == "" {
		return errors.New("peer address is empty")
	}
	if c.RpcEnabled && (c.RpcPort < 1 || c.RpcPort > 65535) {
		return fmt.Errorf("rpc port %d out of range", c.RpcPort)
	}
	return nil
}

// ConfigFromViper builds the node config from the global viper instance.
// Keys that are not set keep their default.
func ConfigFromViper() (Config, error) {
	c := DefaultConfig()

	c.ListenPort = viper.GetInt("p2p.listen_port")

	peer, err := peerAddressFromViper()
	if err != nil {
		return c, err
	}
	c.PeerAddress = peer

	if viper.IsSet("p2p.dial_timeout_ms") {
		c.Transport.DialTimeout = time.Millisecond * time.Duration(viper.GetInt("p2p.dial_timeout_ms"))
	}
	if viper.IsSet("p2p.io_timeout_ms") {
		c.Transport.IOTimeout = time.Millisecond * time.Duration(viper.GetInt("p2p.io_timeout_ms"))
	}
	if viper.IsSet("p2p.max_message_size") {
		c.Transport.MaxMessageSize = viper.GetInt("p2p.max_message_size")
	}
	if viper.IsSet("p2p.snappy") {
		c.Transport.Snappy = viper.GetBool("p2p.snappy")
	}
	if viper.IsSet("p2p.known_cache_size") {
		c.Listener.KnownCacheSize = viper.GetInt("p2p.known_cache_size")
	}
	if viper.IsSet("p2p.known_cache_expiration_seconds") {
		c.Listener.KnownCacheExpiration = time.Second * time.Duration(viper.GetInt("p2p.known_cache_expiration_seconds"))
	}
	if viper.IsSet("ledger.verify_genesis") {
		c.Chain.VerifyGenesis = viper.GetBool("ledger.verify_genesis")
	}
	if viper.IsSet("sync.enabled") {
		c.SyncEnabled = viper.GetBool("sync.enabled")
	}
	if viper.IsSet("sync.timeout_ms") {
		c.SyncTimeout = time.Millisecond * time.Duration(viper.GetInt("sync.timeout_ms"))
	}
	c.RpcEnabled = viper.GetBool("rpc.enabled")
	if viper.IsSet("rpc.port") {
		c.RpcPort = viper.GetInt("rpc.port")
	}

	return c, c.Validate()
}

// p2p.peer_address wins over p2p.peer_host + p2p.peer_port.
func peerAddressFromViper() (string, error) {
	if addr := viper.GetString("p2p.peer_address"); addr != "" {
		peer, err := transport.ParsePeerAddress(addr)
		return peer, errors.Wrap(err, "p2p.peer_address")
	}
	peer, err := transport.HostPort(viper.GetString("p2p.peer_host"), viper.GetInt("p2p.peer_port"))
	return peer, errors.Wrap(err, "p2p.peer_host/p2p.peer_port")
}
