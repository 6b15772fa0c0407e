package rpc

import (
	"net/http"
	"strconv"

	"github.com/annchain/pairledger/ledger"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CounterSource exposes the node's running counters.
type CounterSource interface {
	Counters() map[string]int64
}

type RpcController struct {
	Chain    *ledger.Chain
	Counters CounterSource
}

type StatusResponse struct {
	Length      int              `json:"length"`
	TailHash    string           `json:"tail_hash"`
	GenesisHash string           `json:"genesis_hash"`
	Counters    map[string]int64 `json:"counters,omitempty"`
}

func (rpc *RpcController) NewRouter() *gin.Engine {
	router := gin.New()
	if logrus.GetLevel() > logrus.DebugLevel {
		logger := gin.LoggerWithConfig(gin.LoggerConfig{
			Formatter: ginLogFormatter,
			Output:    logrus.StandardLogger().Out,
			SkipPaths: []string{"/"},
		})
		router.Use(logger)
	}
	router.Use(gin.RecoveryWithWriter(logrus.StandardLogger().Out))
	return rpc.addRouter(router)
}

func (rpc *RpcController) addRouter(router *gin.Engine) *gin.Engine {
	router.GET("/", rpc.writeListOfEndpoints)
	router.GET("status", rpc.Status)
	router.GET("chain", rpc.ChainSnapshot)
	router.GET("block/:index", rpc.BlockAt)
	return router
}

func Response(c *gin.Context, status int, err error, data interface{}) {
	var msg string
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, gin.H{
		"err":  msg,
		"data": data,
	})
}

func (rpc *RpcController) Status(c *gin.Context) {
	status := StatusResponse{
		Length:      rpc.Chain.Len(),
		TailHash:    rpc.Chain.Tail().Hash,
		GenesisHash: rpc.Chain.Genesis().Hash,
	}
	if rpc.Counters != nil {
		status.Counters = rpc.Counters.Counters()
	}
	Response(c, http.StatusOK, nil, status)
}

func (rpc *RpcController) ChainSnapshot(c *gin.Context) {
	Response(c, http.StatusOK, nil, rpc.Chain.Snapshot())
}

func (rpc *RpcController) BlockAt(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		Response(c, http.StatusBadRequest, errors.Wrap(err, "index format error"), nil)
		return
	}
	block, err := rpc.Chain.BlockAt(index)
	if err != nil {
		Response(c, http.StatusNotFound, err, nil)
		return
	}
	Response(c, http.StatusOK, nil, block)
}
