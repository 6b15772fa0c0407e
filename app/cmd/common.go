package cmd

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path"
	"path/filepath"

	files "github.com/annchain/pairledger/common/io"
	"github.com/annchain/pairledger/common/utilfuncs"
	"github.com/annchain/pairledger/ledger"
	"github.com/annchain/pairledger/mylog"
	"github.com/annchain/pairledger/node"
	"github.com/annchain/pairledger/syncer"
	"github.com/annchain/pairledger/transport"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func parseLevel(level string) logrus.Level {
	switch level {
	case "panic":
		return logrus.PanicLevel
	case "fatal":
		return logrus.FatalLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	case "trace":
		return logrus.TraceLevel
	default:
		fmt.Println("Unknown level: ", level, "Set to INFO")
		return logrus.InfoLevel
	}
}

// initLogger uses viper to get the log path and level. It should be called by all other commands
func initLogger() {
	doStdout := viper.GetBool("log.stdout")
	doFile := viper.GetBool("log.file")
	logdir := viper.GetString("logdir")

	var writers []io.Writer

	if doFile {
		abspath, err := filepath.Abs(path.Join(logdir, "run"))
		utilfuncs.PanicIfError(err, fmt.Sprintf("Error on parsing log file path: %s", logdir))

		err = files.MkDirIfNotExists(logdir)
		utilfuncs.PanicIfError(err, fmt.Sprintf("Error on creating log dir: %s", logdir))
		writers = append(writers, mylog.RotateLog(abspath))
		fmt.Println("Will be logged to " + abspath + ".log")
	}
	if doStdout {
		writers = append(writers, os.Stdout)
	}

	switch len(writers) {
	case 0:
		logrus.SetOutput(ioutil.Discard)
	case 1:
		logrus.SetOutput(writers[0])
	default:
		logrus.SetOutput(io.MultiWriter(writers...))
	}

	logrus.SetLevel(parseLevel(viper.GetString("log.level")))

	Formatter := new(logrus.TextFormatter)
	Formatter.ForceColors = doStdout && !doFile
	Formatter.TimestampFormat = mylog.TimestampFormat
	Formatter.FullTimestamp = true
	logrus.StandardLogger().SetFormatter(Formatter)

	if viper.GetBool("log.line_number") {
		logrus.SetReportCaller(true)
	}

	byLevel := viper.GetBool("multifile_by_level")
	if byLevel && doFile {
		panicLog, _ := filepath.Abs(path.Join(logdir, "panic"))
		fatalLog, _ := filepath.Abs(path.Join(logdir, "fatal"))
		warnLog, _ := filepath.Abs(path.Join(logdir, "warn"))
		errorLog, _ := filepath.Abs(path.Join(logdir, "error"))
		infoLog, _ := filepath.Abs(path.Join(logdir, "info"))
		debugLog, _ := filepath.Abs(path.Join(logdir, "debug"))
		traceLog, _ := filepath.Abs(path.Join(logdir, "trace"))
		writerMap := lfshook.WriterMap{
			logrus.PanicLevel: mylog.RotateLog(panicLog),
			logrus.FatalLevel: mylog.RotateLog(fatalLog),
			logrus.WarnLevel:  mylog.RotateLog(warnLog),
			logrus.ErrorLevel: mylog.RotateLog(errorLog),
			logrus.InfoLevel:  mylog.RotateLog(infoLog),
			logrus.DebugLevel: mylog.RotateLog(debugLog),
			logrus.TraceLevel: mylog.RotateLog(traceLog),
		}
		logrus.AddHook(lfshook.NewHook(
			writerMap,
			Formatter,
		))
	}
	logrus.Debug("Logger initialized.")

	// module loggers get their own files only on demand
	if !viper.GetBool("multifile_by_module") || !doFile {
		logdir = ""
	}
	initModuleLoggers(logrus.StandardLogger(), logdir)
}

func initModuleLoggers(logger *logrus.Logger, logdir string) {
	ledger.InitLoggers(logger, logdir)
	transport.InitLoggers(logger, logdir)
	syncer.InitLoggers(logger, logdir)
	node.InitLoggers(logger, logdir)
}
