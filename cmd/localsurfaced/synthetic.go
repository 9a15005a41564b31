package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lanikai/localsurface"
)

const (
	syntheticWidth  = 320
	syntheticHeight = 240
	syntheticSize   = syntheticWidth * syntheticHeight * 3 / 2 // I420
)

// Frame memory is recycled once the consumer releases a buffer.
var framePool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, syntheticSize)
		return &b
	},
}

// produceSynthetic renders a gray I420 frame with a moving bar, rate times a
// second, until ctx is done.
func produceSynthetic(ctx context.Context, sink *localsurface.Sink, rate int) error {
	caps := fmt.Sprintf("video/x-raw,format=I420,width=%d,height=%d,framerate=%d/1",
		syntheticWidth, syntheticHeight, rate)
	if err := sink.SetCaps(caps); err != nil {
		return err
	}

	interval := time.Second / time.Duration(rate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for n := 0; ; n++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		p := framePool.Get().(*[]byte)
		fillFrame(*p, n)
		buf := localsurface.NewBuffer(*p, func() { framePool.Put(p) })
		buf.Timestamp = time.Duration(n) * interval
		buf.Duration = interval

		if err := sink.Render(buf); err != nil {
			return err
		}
	}
}

func fillFrame(frame []byte, n int) {
	luma := frame[:syntheticWidth*syntheticHeight]
	bar := n % syntheticWidth
	for y := 0; y < syntheticHeight; y++ {
		row := luma[y*syntheticWidth : (y+1)*syntheticWidth]
		for x := range row {
			if x == bar {
				row[x] = 235
			} else {
				row[x] = 128
			}
		}
	}
	chroma := frame[len(luma):]
	for i := range chroma {
		chroma[i] = 128
	}
}
