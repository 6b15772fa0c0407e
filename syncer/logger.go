package syncer

import (
	"github.com/annchain/pairledger/mylog"
	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger()

func InitLoggers(logger *logrus.Logger, logdir string) {
	log = mylog.InitLogger(logger, logdir, "syncer")
	logrus.Debug("syncer logger initialized.")
}
