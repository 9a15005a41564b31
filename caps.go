//////////////////////////////////////////////////////////////////////////////
//
// Caps string parsing
//
// Copyright 2019 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package localsurface

import (
	"strconv"
	"strings"

	"github.com/nareix/joy4/av"
	errors "golang.org/x/xerrors"
)

const maxChannels = 8

// Raw audio sample formats, by caps name. Byte order does not change the
// sample size, so both endiannesses map to the same joy4 format.
var audioFormats = map[string]av.SampleFormat{
	"U8":    av.U8,
	"S16LE": av.S16,
	"S16BE": av.S16,
	"S32LE": av.S32,
	"S32BE": av.S32,
	"U32LE": av.U32,
	"U32BE": av.U32,
	"F32LE": av.FLT,
	"F32BE": av.FLT,
	"F64LE": av.DBL,
	"F64BE": av.DBL,
}

var planarFormats = map[av.SampleFormat]av.SampleFormat{
	av.U8:  av.U8P,
	av.S16: av.S16P,
	av.S32: av.S32P,
	av.FLT: av.FLTP,
	av.DBL: av.DBLP,
}

// ParseCaps parses a caps string such as
//
//	video/x-raw,format=I420,width=1280,height=720,framerate=30/1
//	audio/x-raw,format=S16LE,rate=48000,channels=2
//
// The media class is taken from the prefix of the structure name. Any other
// class, or a malformed field, yields an error wrapping ErrFormatInvalid.
func ParseCaps(caps string) (Format, error) {
	var f Format

	fields := strings.Split(caps, ",")
	name := strings.TrimSpace(fields[0])
	params := make(map[string]string)
	for _, field := range fields[1:] {
		kv := strings.SplitN(field, "=", 2)
		if len(kv) != 2 {
			return f, errors.Errorf("caps field %q: %w", field, ErrFormatInvalid)
		}
		params[strings.TrimSpace(kv[0])] = stripType(strings.TrimSpace(kv[1]))
	}

	switch {
	case strings.HasPrefix(name, "video/"):
		f.Type = MediaVideo
		if err := parseVideo(params, &f.Video); err != nil {
			return f, err
		}
	case strings.HasPrefix(name, "audio/"):
		f.Type = MediaAudio
		if err := parseAudio(params, &f.Audio); err != nil {
			return f, err
		}
	default:
		return f, errors.Errorf("caps %q are neither audio nor video: %w", name, ErrFormatInvalid)
	}

	if err := f.Validate(); err != nil {
		return f, errors.Errorf("caps %q: %w", caps, err)
	}
	return f, nil
}

func parseVideo(params map[string]string, v *VideoInfo) (err error) {
	v.PixelFormat = params["format"]
	if v.Width, err = intParam(params, "width"); err != nil {
		return err
	}
	if v.Height, err = intParam(params, "height"); err != nil {
		return err
	}

	v.FrameRate = Fraction{0, 1}
	if s, ok := params["framerate"]; ok {
		parts := strings.SplitN(s, "/", 2)
		num, nerr := strconv.Atoi(parts[0])
		den := 1
		var derr error
		if len(parts) == 2 {
			den, derr = strconv.Atoi(parts[1])
		}
		if nerr != nil || derr != nil {
			return errors.Errorf("framerate %q: %w", s, ErrFormatInvalid)
		}
		v.FrameRate = Fraction{num, den}
	}
	return nil
}

func parseAudio(params map[string]string, a *AudioInfo) (err error) {
	if a.Rate, err = intParam(params, "rate"); err != nil {
		return err
	}

	channels, err := intParam(params, "channels")
	if err != nil {
		return err
	}
	if channels < 1 || channels > maxChannels {
		return errors.Errorf("%d channels: %w", channels, ErrFormatInvalid)
	}
	a.Layout = layoutForChannels(channels)

	name := params["format"]
	sf, ok := audioFormats[name]
	if !ok {
		return errors.Errorf("audio format %q: %w", name, ErrFormatInvalid)
	}
	if params["layout"] == "non-interleaved" {
		if p, ok := planarFormats[sf]; ok {
			sf = p
		}
	}
	a.SampleFormat = sf
	return nil
}

func intParam(params map[string]string, key string) (int, error) {
	s, ok := params[key]
	if !ok {
		return 0, errors.Errorf("missing %s: %w", key, ErrFormatInvalid)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Errorf("%s=%q: %w", key, s, ErrFormatInvalid)
	}
	return n, nil
}

// Strip an explicit type annotation, e.g. "(int)1280" or "(fraction)30/1".
func stripType(value string) string {
	if strings.HasPrefix(value, "(") {
		if i := strings.IndexByte(value, ')'); i >= 0 {
			return strings.TrimSpace(value[i+1:])
		}
	}
	return value
}
