package config

import (
	"time"
)

const (
	AppName    = "kilau"
	NsqChannel = "kilau"

	TopicSequenceSetting = "sequence_setting"
	TopicBranch          = "branch"
)

var (
	// set by -ldflags at build time
	Version = "0.1.0"
	Commit  = "unknown"
	Build   = "unknown"

	Now = time.Now()
)
