//go:build !test

package main

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/danhawkins/gopherboy/internal/gameboy"
	"github.com/danhawkins/gopherboy/pkg/display"
	"github.com/danhawkins/gopherboy/pkg/spectate"
)

func runWindowed(gb *gameboy.System, relay *spectate.Relay) error {
	win := display.New(gb)

	perf := display.NewPerformanceWindow()
	win.OnFrame(perf.PushFrameTime)
	if relay != nil {
		win.OnFrame(func(_ time.Duration) { relay.PushFrame(gb.Framebuffer()) })
	}

	win.Run()
	return nil
}

func startSpectator(addr string, logger *logrus.Logger) *spectate.Relay {
	relay := spectate.NewRelay()
	go func() {
		if err := spectate.ListenAndServe(addr, relay); err != nil {
			logger.Errorf("spectator relay stopped: %v", err)
		}
	}()
	logger.Infof("spectator relay listening on %s", addr)
	return relay
}
