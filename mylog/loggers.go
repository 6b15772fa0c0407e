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
package mylog

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/annchain/pairledger/common/utilfuncs"
	rotatelogs "github.com/lestrrat/go-file-rotatelogs"
	"github.com/sirupsen/logrus"
)

const (
	TimestampFormat = "2006-01-02 15:04:05.000000"
)

// RotateLog opens a daily rotated file at abspath, keeping a week of history
// and a stable link at abspath.log.
func RotateLog(abspath string) *rotatelogs.RotateLogs {
	logFile, err := rotatelogs.New(
		abspath+"%Y%m%d%H%M.log",
		rotatelogs.WithLinkName(abspath+".log"),
		rotatelogs.WithMaxAge(24*time.Hour*7),
		rotatelogs.WithRotationTime(time.Hour*24),
	)
	utilfuncs.PanicIfError(err, "err init log")
	return logFile
}

// InitLogger derives a module logger from logger. When logdir is empty the
// base logger is returned as is, otherwise output is duplicated into a
// rotated file named after outputFile.
func InitLogger(logger *logrus.Logger, logdir string, outputFile string) *logrus.Logger {
	if logdir == "" {
		return logger
	}
	folderPath, err := filepath.Abs(logdir)
	utilfuncs.PanicIfError(err, fmt.Sprintf("Error on parsing log path: %s", logdir))

	abspath, err := filepath.Abs(path.Join(logdir, outputFile))
	utilfuncs.PanicIfError(err, fmt.Sprintf("Error on parsing log file path: %s", logdir))

	err = os.MkdirAll(folderPath, os.ModePerm)
	utilfuncs.PanicIfError(err, fmt.Sprintf("Error on creating log dir: %s", folderPath))

	logrus.WithField("path", abspath).Info("Additional logger")

	return &logrus.Logger{
		Level:        logger.Level,
		Formatter:    logger.Formatter,
		Out:          io.MultiWriter(logger.Out, RotateLog(abspath)),
		Hooks:        logger.Hooks,
		ExitFunc:     logger.ExitFunc,
		ReportCaller: logger.ReportCaller,
	}
}

// LogInit configures the standard logger for tools and tests.
func LogInit(level logrus.Level) {
	formatter := new(logrus.TextFormatter)
	formatter.TimestampFormat = TimestampFormat
	formatter.FullTimestamp = true
	formatter.ForceColors = true
	logrus.SetFormatter(formatter)
	logrus.SetLevel(level)
}
