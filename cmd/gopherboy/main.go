// Command gopherboy is the CLI entrypoint: it loads a cartridge (and
// optional boot ROM), constructs a gameboy.System, and either drives
// it inside a display.Window or, in --headless mode, runs a fixed
// number of frames and exits. Flag handling follows the teacher
// corpus's urfave/cli v1 style.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/danhawkins/gopherboy/internal/gameboy"
	"github.com/danhawkins/gopherboy/internal/model"
	"github.com/danhawkins/gopherboy/pkg/audio"
	pkglog "github.com/danhawkins/gopherboy/pkg/log"
	"github.com/danhawkins/gopherboy/pkg/rom"
	"github.com/danhawkins/gopherboy/pkg/spectate"
)

func main() {
	app := cli.NewApp()
	app.Name = "gopherboy"
	app.Usage = "gopherboy [options] <ROM file>"
	app.Description = "A Game Boy / Game Boy Color emulator"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "bios",
			Usage: "path to a boot ROM image (256 bytes DMG or 2304 bytes CGB)",
		},
		cli.StringFlag{
			Name:  "model",
			Value: "auto",
			Usage: "hardware model: auto, dmg, or cgb",
		},
		cli.IntFlag{
			Name:  "sample-rate",
			Value: 44100,
			Usage: "audio sample rate in Hz",
		},
		cli.BoolFlag{
			Name:  "grayscale",
			Usage: "use the grayscale palette instead of the greenish one for DMG rendering",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "run without a window for a fixed number of frames",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "number of frames to run in --headless mode",
		},
		cli.StringFlag{
			Name:  "log-to-file",
			Usage: "write a per-instruction CPU trace (PC, opcode bytes, registers, flags) to this path",
		},
		cli.StringFlag{
			Name:  "spectate-addr",
			Usage: "if set, serve a read-only websocket spectator feed at this address (e.g. :8090)",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "gopherboy:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger := pkglog.New(logrus.InfoLevel)

	romPath := c.Args().First()
	if romPath == "" {
		cli.ShowAppHelp(c)
		return errors.New("no ROM path provided")
	}

	romData, err := rom.Load(romPath)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	bootROM, err := rom.LoadBootROM(c.String("bios"))
	if err != nil {
		return fmt.Errorf("loading boot ROM: %w", err)
	}

	sink := audio.NewQueue(8192)

	opts := gameboy.Options{
		Model:      model.FromString(c.String("model")),
		BootROM:    bootROM,
		SampleRate: c.Int("sample-rate"),
		Grayscale:  c.Bool("grayscale"),
	}

	gb, err := gameboy.New(romData, sink, opts)
	if err != nil {
		return fmt.Errorf("initializing system: %w", err)
	}
	logger.Infof("loaded %s: mapper=%s model=%s", romPath, gb.Cart.Header.Type, gb.Model)

	savePath := rom.SaveFilename(romPath, gb.Cart.Header)
	if data, err := os.ReadFile(savePath); err == nil {
		gb.LoadSaveRAM(data)
	}
	defer func() {
		if err := gb.Shutdown(func(data []byte) error {
			return os.WriteFile(savePath, data, 0o644)
		}); err != nil {
			logger.Errorf("writing save file: %v", err)
		}
	}()

	if tracePath := c.String("log-to-file"); tracePath != "" {
		traceLogger, traceFile, err := pkglog.NewFileLogger(tracePath, logrus.InfoLevel)
		if err != nil {
			return fmt.Errorf("opening trace file: %w", err)
		}
		defer traceFile.Close()
		gb.EnableTrace(traceLogger)
	}

	var relay *spectate.Relay
	if spectateAddr := c.String("spectate-addr"); spectateAddr != "" {
		relay = startSpectator(spectateAddr, logger)
	}

	if c.Bool("headless") {
		return runHeadless(gb, c.Int("frames"), logger)
	}
	return runWindowed(gb, relay)
}

func runHeadless(gb *gameboy.System, frames int, logger *logrus.Logger) error {
	if frames <= 0 {
		return errors.New("headless mode requires --frames with a positive value")
	}
	for i := 0; i < frames; i++ {
		gb.RunFrame()
	}
	logger.Infof("headless run complete: %d frames", frames)
	return nil
}
