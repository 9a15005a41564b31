//////////////////////////////////////////////////////////////////////////////
//
// Media format metadata and buffer duration estimation
//
// Copyright 2019 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package localsurface

import (
	"fmt"
	"time"

	"github.com/nareix/joy4/av"
)

// MediaType classifies the buffers flowing through a surface.
type MediaType int

const (
	MediaUndefined MediaType = iota
	MediaVideo
	MediaAudio
)

func (t MediaType) String() string {
	switch t {
	case MediaVideo:
		return "video"
	case MediaAudio:
		return "audio"
	default:
		return "undefined"
	}
}

// Fraction is a rational number, e.g. a frame rate of 30000/1001.
type Fraction struct {
	Num int
	Den int
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

type VideoInfo struct {
	PixelFormat string
	Width       int
	Height      int

	// Zero numerator means variable frame rate.
	FrameRate Fraction
}

// FrameDuration returns the duration of one frame, or TimeNone for a
// variable frame rate.
func (v VideoInfo) FrameDuration() time.Duration {
	if v.FrameRate.Num <= 0 || v.FrameRate.Den <= 0 {
		return TimeNone
	}
	return time.Duration(int64(time.Second) * int64(v.FrameRate.Den) / int64(v.FrameRate.Num))
}

type AudioInfo struct {
	Rate         int
	SampleFormat av.SampleFormat
	Layout       av.ChannelLayout
}

func (a AudioInfo) Channels() int {
	return a.Layout.Count()
}

// BytesPerFrame is the size of one sample across all channels.
func (a AudioInfo) BytesPerFrame() int {
	return a.SampleFormat.BytesPerSample() * a.Channels()
}

// Format describes the media carried by a surface. Only the info matching
// Type is meaningful.
type Format struct {
	Type  MediaType
	Video VideoInfo
	Audio AudioInfo
}

func (f Format) String() string {
	switch f.Type {
	case MediaVideo:
		return fmt.Sprintf("video %dx%d@%v", f.Video.Width, f.Video.Height, f.Video.FrameRate)
	case MediaAudio:
		return fmt.Sprintf("audio %dHz %v %v", f.Audio.Rate, f.Audio.SampleFormat, f.Audio.Layout)
	default:
		return "undefined"
	}
}

// Validate reports ErrFormatInvalid for formats that cannot describe a
// stream.
func (f Format) Validate() error {
	switch f.Type {
	case MediaVideo:
		if f.Video.Width <= 0 || f.Video.Height <= 0 {
			return ErrFormatInvalid
		}
		if f.Video.FrameRate.Num < 0 || f.Video.FrameRate.Den <= 0 {
			return ErrFormatInvalid
		}
	case MediaAudio:
		if f.Audio.Rate <= 0 || f.Audio.BytesPerFrame() <= 0 {
			return ErrFormatInvalid
		}
	default:
		return ErrFormatInvalid
	}
	return nil
}

// EstimateEnd returns the end time of b. When b carries no duration it is
// estimated from the frame rate (video) or the payload size and sample rate
// (audio). TimeNone is returned if b has no timestamp or nothing can be
// estimated.
func (f Format) EstimateEnd(b *Buffer) time.Duration {
	if !b.HasTimestamp() {
		return TimeNone
	}
	if b.HasDuration() {
		return b.Timestamp + b.Duration
	}

	switch f.Type {
	case MediaVideo:
		if d := f.Video.FrameDuration(); d != TimeNone {
			return b.Timestamp + d
		}
	case MediaAudio:
		if bps := int64(f.Audio.Rate) * int64(f.Audio.BytesPerFrame()); bps > 0 {
			return b.Timestamp + time.Duration(int64(b.Size())*int64(time.Second)/bps)
		}
	}
	return TimeNone
}

// layoutForChannels returns a layout with the given number of channels.
func layoutForChannels(n int) av.ChannelLayout {
	switch n {
	case 1:
		return av.CH_MONO
	case 2:
		return av.CH_STEREO
	}
	return av.ChannelLayout(1<<uint(n) - 1)
}
