//go:build !linux && !darwin

package network

import (
	"github.com/danpilch/ifstat/pkg/collectors"
	"github.com/sirupsen/logrus"
)

const defaultSource = SourcePsutil

func platformSources(logrus.FieldLogger) []collectors.Source {
	return nil
}
