//go:build !test

package audio

import (
	"encoding/binary"
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

// SDLSink opens an SDL audio device in queue mode (no callback, unlike
// the teacher's pkg/audio/sdl.go) and periodically drains a Queue into
// it with sdl.QueueAudio.
type SDLSink struct {
	deviceID sdl.AudioDeviceID
	queue    *Queue
}

// OpenSDLSink opens the default SDL audio output device at sampleRate
// Hz, stereo 16-bit signed, and returns an SDLSink backed by a fresh
// Queue of the given sample-pair capacity.
func OpenSDLSink(sampleRate, queueCapacity int) (*SDLSink, error) {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("audio: sdl init: %w", err)
	}

	spec := &sdl.AudioSpec{
		Freq:     int32(sampleRate),
		Format:   sdl.AUDIO_S16LSB,
		Channels: 2,
		Samples:  1024,
	}
	id, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("audio: open device: %w", err)
	}

	sink := &SDLSink{deviceID: id, queue: NewQueue(queueCapacity)}
	sdl.PauseAudioDevice(id, false)
	return sink, nil
}

// PushSample implements apu.Sink by forwarding to the internal Queue.
func (s *SDLSink) PushSample(left, right int16) { s.queue.PushSample(left, right) }

// Flush drains every buffered sample and queues it to the SDL device.
// The host's run loop calls this once per frame (or on a timer); the
// device itself paces playback from its own internal ring buffer.
func (s *SDLSink) Flush() error {
	samples := s.queue.Drain()
	if len(samples) == 0 {
		return nil
	}
	buf := make([]byte, len(samples)*2)
	for i, v := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(v))
	}
	return sdl.QueueAudio(s.deviceID, buf)
}

// Close stops and releases the SDL audio device.
func (s *SDLSink) Close() {
	sdl.CloseAudioDevice(s.deviceID)
}
