package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/ascii-glitch/audio"
	"github.com/lixenwraith/ascii-glitch/config"
	"github.com/lixenwraith/ascii-glitch/glitch"
	"github.com/lixenwraith/ascii-glitch/status"
)

var (
	textFlag    = flag.String("text", "", "Text to animate (overrides -file and stdin)")
	fileFlag    = flag.String("file", "", "Read text from file")
	configFlag  = flag.String("config", "", "Config file (.yaml, .yml or .toml); default "+config.DefaultPath())
	backendFlag = flag.String("backend", "tcell", "Terminal backend: tcell, bubble")
	seedFlag    = flag.Int64("seed", 0, "Random seed, 0 seeds from the clock")
	soundFlag   = flag.Bool("sound", false, "Click on every ripple")
	debugFlag   = flag.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)
)

// session carries everything a backend needs to build and host the engine
type session struct {
	text    string
	cfg     glitch.Config
	metrics *status.Registry
	opts    []glitch.Option
}

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	text, err := readText(*textFlag, *fileFlag, os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read text: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	s := &session{
		text:    text,
		cfg:     cfg,
		metrics: status.NewRegistry(),
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.opts = append(s.opts,
		glitch.WithRand(rand.New(rand.NewSource(seed))),
		glitch.WithLogger(slog.Default()),
		glitch.WithMetrics(s.metrics),
	)

	if *soundFlag {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			log.Printf("Audio initialization failed: %v (continuing without audio)", err)
		} else {
			defer sm.Cleanup()
			s.opts = append(s.opts, glitch.WithRippleHook(func(r glitch.Ripple) {
				sm.PlayGlitch(r.Neighbors)
			}))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting", "backend", *backendFlag, "seed", seed)

	switch *backendFlag {
	case "tcell":
		err = runScreen(ctx, s)
	case "bubble":
		err = runBubble(ctx, s)
	default:
		err = fmt.Errorf("unknown backend %q", *backendFlag)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
