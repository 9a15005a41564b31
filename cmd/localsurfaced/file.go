package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lanikai/localsurface"

	"github.com/nareix/joy4/av"
	"github.com/nareix/joy4/format/mp4"
	"github.com/pkg/errors"
)

// produceFile renders the first video stream of an MP4 file, paced by the
// packet timestamps, looping at end of file.
func produceFile(ctx context.Context, sink *localsurface.Sink, filename string) error {
	log.Info("Opening file %s", filename)
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	demuxer := mp4.NewDemuxer(file)
	streams, err := demuxer.Streams()
	if err != nil {
		return errors.Wrapf(err, "reading streams of %s", filename)
	}

	index := -1
	for i, codec := range streams {
		if !codec.Type().IsVideo() {
			log.Debug("Skipping %v stream", codec.Type())
			continue
		}
		info, ok := codec.(av.VideoCodecData)
		if !ok {
			continue
		}
		log.Info("%v stream: %dx%d", info.Type(), info.Width(), info.Height())
		caps := fmt.Sprintf("video/x-%s,width=%d,height=%d",
			strings.ToLower(info.Type().String()), info.Width(), info.Height())
		if err := sink.SetCaps(caps); err != nil {
			return err
		}
		index = i
		break
	}
	if index < 0 {
		return errors.Errorf("No video stream found in %s", filename)
	}

	// Wall clock time of the first packet of the current loop, and the
	// timestamp offset accumulated by previous loops.
	var start time.Time
	var offset, prev, last time.Duration

	for {
		pkt, err := demuxer.ReadPacket()
		if err == io.EOF {
			if err := demuxer.SeekToTime(0); err != nil {
				return err
			}
			length := loopLength(prev, last)
			offset += length
			if !start.IsZero() {
				start = start.Add(length)
			}
			prev, last = 0, 0
			continue
		} else if err != nil {
			return errors.Wrapf(err, "reading %s", filename)
		}
		if int(pkt.Idx) != index {
			continue
		}

		if start.IsZero() {
			start = time.Now().Add(-pkt.Time)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Until(start.Add(pkt.Time))):
		}
		prev, last = last, pkt.Time

		buf := localsurface.NewBuffer(pkt.Data, nil)
		buf.Timestamp = offset + pkt.Time
		if err := sink.Render(buf); err != nil {
			return err
		}
	}
}

// Assumed frame duration when a file holds a single video packet.
const defaultFrameDuration = 40 * time.Millisecond

// loopLength is the playing time of one pass through a file whose last two
// video packets are stamped prev and last. The final frame is assumed to
// last as long as the one before it.
func loopLength(prev, last time.Duration) time.Duration {
	frame := last - prev
	if frame <= 0 {
		frame = defaultFrameDuration
	}
	return last + frame
}
