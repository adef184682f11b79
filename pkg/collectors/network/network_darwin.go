//go:build darwin

package network

import (
	"github.com/danpilch/ifstat/pkg/collectors"
	"github.com/sirupsen/logrus"
)

const defaultSource = SourceNetstat

func platformSources(logger logrus.FieldLogger) []collectors.Source {
	return []collectors.Source{NewNetstat(logger)}
}
