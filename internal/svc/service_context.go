package svc

import (
	"os"

	"github.com/Ozodimgba/geyser/internal/config"
	"github.com/Ozodimgba/geyser/internal/logic/detector"
	"github.com/Ozodimgba/geyser/internal/logic/report"
)

// ServiceContext wires the per-process resources: the stdout reporter and
// the detection pipeline feeding it.
type ServiceContext struct {
	Config   config.Config
	Reporter *report.Reporter
	Detector *detector.Detector
}

func NewServiceContext(c config.Config) *ServiceContext {
	reporter := report.NewReporter(os.Stdout)
	return &ServiceContext{
		Config:   c,
		Reporter: reporter,
		Detector: detector.NewDetector(reporter),
	}
}
