package ledger

import (
	"github.com/annchain/pairledger/mylog"
	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger()

func InitLoggers(logger *logrus.Logger, logdir string) {
	log = mylog.InitLogger(logger, logdir, "ledger")
	logrus.Debug("ledger logger initialized.")
}
