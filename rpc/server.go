package rpc

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/annchain/pairledger/common/goroutine"
	"github.com/sirupsen/logrus"
)

const ShutdownTimeoutSeconds = 5

type RpcServer struct {
	Controller *RpcController
	Port       int
	server     *http.Server
	listener   net.Listener
}

func NewRpcServer(port int, controller *RpcController) *RpcServer {
	srv := &RpcServer{
		Controller: controller,
		Port:       port,
	}
	srv.InitDefault()
	return srv
}

func (srv *RpcServer) InitDefault() {
	router := srv.Controller.NewRouter()
	srv.server = &http.Server{
		Addr:    ":" + strconv.Itoa(srv.Port),
		Handler: router,
	}
}

// Listen binds the port ahead of Start so a busy port is reported to the caller.
func (srv *RpcServer) Listen() error {
	l, err := net.Listen("tcp", srv.server.Addr)
	if err != nil {
		return err
	}
	srv.listener = l
	return nil
}

func (srv *RpcServer) Addr() string {
	if srv.listener == nil {
		return srv.server.Addr
	}
	return srv.listener.Addr().String()
}

func (srv *RpcServer) Start() {
	if srv.listener == nil {
		if err := srv.Listen(); err != nil {
			logrus.WithError(err).Error("error in Http server")
			return
		}
	}
	logrus.Infof("listening Http on %s", srv.Addr())
	goroutine.New(func() {
		if err := srv.server.Serve(srv.listener); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("error in Http server")
		}
	})
}

func (srv *RpcServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeoutSeconds*time.Second)
	defer cancel()
	if err := srv.server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("error while shutting down the Http server")
	}
	if srv.listener != nil {
		// no-op when Serve already closed it
		_ = srv.listener.Close()
	}
	logrus.Infof("http server Stopped")
}

func (srv *RpcServer) Name() string {
	return fmt.Sprintf("rpcServer at port %d", srv.Port)
}
