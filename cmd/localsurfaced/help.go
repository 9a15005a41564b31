package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"
)

var (
	flagChannels     []string
	flagJitterBuffer uint
	flagRate         int
	flagPoll         time.Duration
	flagInput        string
	flagDuration     time.Duration
	flagStats        time.Duration
	flagMetricsFile  string
	flagHelp         bool
	flagVersion      bool
)

func init() {
	flag.StringSliceVarP(&flagChannels, "channels", "c", []string{"default"}, "Channel names, one producer and one consumer each")
	flag.UintVarP(&flagJitterBuffer, "jitter-buffer", "j", 50, "Jitter buffer size in buffers, 0 for unbounded")
	flag.IntVarP(&flagRate, "rate", "r", 30, "Synthetic producer frame rate")
	flag.DurationVarP(&flagPoll, "poll", "p", 33*time.Millisecond, "Consumer poll interval")
	flag.StringVarP(&flagInput, "input", "i", "", "MP4 file to produce from (default: synthetic video)")
	flag.DurationVarP(&flagDuration, "duration", "d", 0, "Stop after this long (default: run until interrupted)")
	flag.DurationVarP(&flagStats, "stats", "s", time.Second, "Statistics interval")
	flag.StringVarP(&flagMetricsFile, "metrics-file", "m", "", "Write Prometheus metrics to this file")

	flag.BoolVarP(&flagHelp, "help", "h", false, "Print usage information and exit")
	flag.BoolVarP(&flagVersion, "version", "v", false, "Print version information and exit")
}

const helpString = `In-process media rendezvous demo

Usage: localsurfaced [OPTION]...

Runs one producer and one consumer per channel inside a single process. The
producer renders buffers into a local sink, the consumer polls them out of a
local source through a bounded jitter buffer.

Options:
%s
Environment:
  LOGLEVEL               Comma-separated log levels, e.g. "info,localsink=debug"

Please report bugs to: aloha@lanikailabs.com`

// Help information is printed and program exits
func help() {
	title := color.New(color.FgCyan, color.Bold)
	title.Println("localsurfaced")
	fmt.Printf(helpString+"\n", flag.CommandLine.FlagUsages())
}

// version displays information and exits successfully (GNU convention)
func version() {
	fmt.Println("localsurfaced", GitRevisionId)
	fmt.Println("Copyright 2019 Lanikai Labs LLC. All rights reserved.")
}
