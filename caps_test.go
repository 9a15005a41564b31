package localsurface

import (
	"errors"
	"testing"

	"github.com/nareix/joy4/av"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVideoCaps(t *testing.T) {
	f, err := ParseCaps("video/x-raw, format=(string)I420, width=(int)1280, height=720, framerate=(fraction)30000/1001")
	require.NoError(t, err)
	assert.Equal(t, MediaVideo, f.Type)
	assert.Equal(t, "I420", f.Video.PixelFormat)
	assert.Equal(t, 1280, f.Video.Width)
	assert.Equal(t, 720, f.Video.Height)
	assert.Equal(t, Fraction{30000, 1001}, f.Video.FrameRate)
}

func TestParseVideoCapsVariableRate(t *testing.T) {
	f, err := ParseCaps("video/x-raw,width=320,height=240")
	require.NoError(t, err)
	assert.Equal(t, Fraction{0, 1}, f.Video.FrameRate)
	assert.Equal(t, TimeNone, f.Video.FrameDuration())
}

func TestParseAudioCaps(t *testing.T) {
	f, err := ParseCaps("audio/x-raw,format=S16LE,rate=48000,channels=2,layout=interleaved")
	require.NoError(t, err)
	assert.Equal(t, MediaAudio, f.Type)
	assert.Equal(t, 48000, f.Audio.Rate)
	assert.Equal(t, av.S16, f.Audio.SampleFormat)
	assert.Equal(t, 2, f.Audio.Channels())
	assert.Equal(t, 4, f.Audio.BytesPerFrame())

	f, err = ParseCaps("audio/x-raw,format=F32LE,rate=44100,channels=6,layout=non-interleaved")
	require.NoError(t, err)
	assert.Equal(t, av.FLTP, f.Audio.SampleFormat)
	assert.Equal(t, 6, f.Audio.Channels())
	assert.Equal(t, 24, f.Audio.BytesPerFrame())
}

func TestParseCapsInvalid(t *testing.T) {
	for _, caps := range []string{
		"",
		"application/x-rtp,media=video",
		"video/x-raw,width=640",
		"video/x-raw,width=640,height=abc",
		"video/x-raw,width=0,height=480",
		"video/x-raw,width=640,height=480,framerate=x/1",
		"video/x-raw,width=640,height=480,framerate",
		"audio/x-raw,format=S16LE,rate=48000",
		"audio/x-raw,format=S16LE,rate=48000,channels=0",
		"audio/x-raw,format=S24LE,rate=48000,channels=2",
		"audio/x-raw,format=S16LE,rate=0,channels=2",
	} {
		_, err := ParseCaps(caps)
		assert.True(t, errors.Is(err, ErrFormatInvalid), "%q: %v", caps, err)
	}
}
