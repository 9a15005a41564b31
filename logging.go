//////////////////////////////////////////////////////////////////////////////
//
// Package loggers
//
// Copyright 2019 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package localsurface

import "github.com/lanikai/localsurface/internal/logging"

var (
	sinkLog   = logging.DefaultLogger.WithTag("localsink")
	sourceLog = logging.DefaultLogger.WithTag("localsrc")
)
