// Command button-relay watches the NanoHat button lines through the
// sysfs GPIO interface and signals the companion display process on
// each press.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/button-relay/internal/gpio"
	"github.com/sweeney/button-relay/internal/launch"
	"github.com/sweeney/button-relay/internal/mqtt"
	"github.com/sweeney/button-relay/internal/notify"
	"github.com/sweeney/button-relay/internal/poll"
	"github.com/sweeney/button-relay/internal/proc"
	"github.com/sweeney/button-relay/internal/single"
	"github.com/sweeney/button-relay/internal/status"
)

const (
	exitFatal          = 1
	exitAlreadyRunning = 3
)

type config struct {
	lines        [3]int
	edge         gpio.Edge
	pollTimeout  time.Duration
	settle       time.Duration
	gpioRoot     string
	backend      string
	chip         string
	target       string
	script       string
	companionLog string
	noLaunch     bool
	broker       string
}

func main() {
	lineK1 := flag.Int("line-k1", gpio.DefaultLineK1, "GPIO line for button K1")
	lineK2 := flag.Int("line-k2", gpio.DefaultLineK2, "GPIO line for button K2")
	lineK3 := flag.Int("line-k3", gpio.DefaultLineK3, "GPIO line for button K3")
	edge := flag.String("edge", "rising", "Edge mode: rising, falling or both")
	pollTimeout := flag.Duration("poll-timeout", 15*time.Millisecond, "Multiplexer wait bound")
	settle := flag.Duration("settle", 3*time.Second, "Delay before arming GPIO (0 to disable)")
	gpioRoot := flag.String("gpio-root", gpio.DefaultRoot, "Sysfs GPIO control tree")
	backend := flag.String("backend", "sysfs", `GPIO backend: "sysfs" or "cdev"`)
	chip := flag.String("chip", "gpiochip0", "GPIO character device (cdev backend)")
	target := flag.String("target", "python3", "Companion process executable name")
	script := flag.String("companion-script", "BakeBit/Software/Python/bakebit_nanohat_oled.py",
		"Companion script path, relative to the work directory")
	companionLog := flag.String("companion-log", "/tmp/nanoled-python.log", "Companion output log")
	noLaunch := flag.Bool("no-launch", false, "Do not launch the companion at startup")
	pidfile := flag.String("pidfile", "/run/button-relay.pid", "Singleton pidfile")
	logPath := flag.String("log", "", "Append diagnostics to this file (default stderr)")
	broker := flag.String("broker", "", "MQTT broker for press telemetry (empty to disable)")

	flag.Parse()

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("fatal: open log %s: %v", *logPath, err)
		}
		log.SetOutput(f)
	}

	edgeMode, ok := gpio.ParseEdge(*edge)
	if !ok {
		log.Fatalf("fatal: invalid edge mode %q", *edge)
	}

	release, err := single.Acquire(*pidfile)
	if err != nil {
		if errors.Is(err, single.ErrAlreadyRunning) {
			log.Printf("%v", err)
			os.Exit(exitAlreadyRunning)
		}
		log.Fatalf("fatal: %v", err)
	}

	err = run(config{
		lines:        [3]int{*lineK1, *lineK2, *lineK3},
		edge:         edgeMode,
		pollTimeout:  *pollTimeout,
		settle:       *settle,
		gpioRoot:     *gpioRoot,
		backend:      *backend,
		chip:         *chip,
		target:       *target,
		script:       *script,
		companionLog: *companionLog,
		noLaunch:     *noLaunch,
		broker:       *broker,
	})
	release()
	if err != nil {
		log.Printf("fatal: %v", err)
		os.Exit(exitFatal)
	}
}

func run(cfg config) error {
	workDir, err := launch.WorkDir()
	if err != nil {
		return err
	}

	if cfg.settle > 0 {
		// Give udev time to settle permissions on the sysfs tree when
		// the daemon starts right after boot.
		time.Sleep(cfg.settle)
	}

	translator := notify.NewTranslator(cfg.lines[0], cfg.lines[1], cfg.lines[2])
	dispatcher := notify.NewDispatcher(cfg.target, proc.NewLocator(), notify.KillSignaler{})

	var publisher mqtt.Publisher
	var mqttStatus mqtt.ConnectionStatus
	if cfg.broker != "" {
		rp := mqtt.NewRealPublisher(cfg.broker)
		publisher = rp
		mqttStatus = rp
		defer rp.Close()
	}

	tracker := status.NewTracker(time.Now(), status.Config{
		Lines:         cfg.lines,
		Edge:          string(cfg.edge),
		Backend:       cfg.backend,
		PollTimeoutMs: cfg.pollTimeout.Milliseconds(),
		Target:        cfg.target,
		Broker:        cfg.broker,
	})

	launcher := &launch.Launcher{
		Interpreter: "python3",
		Script:      cfg.script,
		LogPath:     cfg.companionLog,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if cfg.backend == "cdev" {
		return runCdev(cfg, translator, dispatcher, publisher, mqttStatus, tracker, launcher, workDir, sigCh)
	}

	channels := make([]gpio.Channel, 0, len(cfg.lines))
	for _, line := range cfg.lines {
		ch, err := gpio.Configure(cfg.gpioRoot, line, cfg.edge)
		if err != nil {
			for _, open := range channels {
				open.Close()
			}
			return fmt.Errorf("configure line %d: %w", line, err)
		}
		channels = append(channels, ch)
	}

	poller, err := poll.NewEpoll()
	if err != nil {
		return fmt.Errorf("create multiplexer: %w", err)
	}
	for _, ch := range channels {
		if err := poller.Add(ch.Fd()); err != nil {
			return fmt.Errorf("register line %d: %w", ch.Line(), err)
		}
	}

	if !cfg.noLaunch {
		launcher.StartOnce(workDir)
	}

	publishStartup(publisher, mqttStatus, tracker)
	log.Printf("started: lines=%v edge=%s timeout=%v target=%q backend=%s",
		cfg.lines, cfg.edge, cfg.pollTimeout, cfg.target, cfg.backend)

	err = runLoop(channels, poller, translator, dispatcher, publisher, mqttStatus, tracker, cfg.pollTimeout, sigCh)

	// Best-effort cleanup. The original daemon left its lines exported
	// forever; releasing them keeps repeated restarts tidy.
	poller.Close()
	for _, ch := range channels {
		if cerr := ch.Close(); cerr != nil {
			log.Printf("close line %d: %v", ch.Line(), cerr)
		}
	}
	for _, line := range cfg.lines {
		gpio.Release(cfg.gpioRoot, line)
	}
	return err
}

// runLoop is the single thread that owns the whole event path: wait,
// read-and-rearm, translate, dispatch. It returns nil on a termination
// signal and an error only if the multiplexer itself breaks.
func runLoop(channels []gpio.Channel, poller poll.Poller, translator *notify.Translator,
	dispatcher *notify.Dispatcher, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus,
	tracker *status.Tracker, timeout time.Duration, sig <-chan os.Signal) error {

	byFd := make(map[int]gpio.Channel, len(channels))
	for _, ch := range channels {
		byFd[ch.Fd()] = ch
	}

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			publishShutdown(publisher, mqttStatus, tracker, s)
			return nil
		default:
		}

		ready, err := poller.Wait(timeout)
		if err != nil {
			return fmt.Errorf("multiplexer wait: %w", err)
		}

		for _, fd := range ready {
			ch, ok := byFd[fd]
			if !ok {
				continue
			}
			// The read re-arms the line even when the level is not
			// active, so it must happen for every ready channel.
			if !ch.ReadLevel() {
				continue
			}
			handlePress(ch.Line(), translator, dispatcher, publisher, tracker)
		}
	}
}

// runCdev consumes kernel edge events from the GPIO character device
// instead of the sysfs multiplexer loop.
func runCdev(cfg config, translator *notify.Translator, dispatcher *notify.Dispatcher,
	publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker,
	launcher *launch.Launcher, workDir string, sig <-chan os.Signal) error {

	watcher, err := gpio.NewCdevWatcher(cfg.chip, cfg.lines[:], cfg.edge)
	if err != nil {
		return fmt.Errorf("cdev backend: %w", err)
	}
	defer watcher.Close()

	if !cfg.noLaunch {
		launcher.StartOnce(workDir)
	}

	publishStartup(publisher, mqttStatus, tracker)
	log.Printf("started: lines=%v chip=%s target=%q backend=cdev",
		cfg.lines, cfg.chip, cfg.target)

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			publishShutdown(publisher, mqttStatus, tracker, s)
			return nil
		case line := <-watcher.Presses():
			handlePress(line, translator, dispatcher, publisher, tracker)
		}
	}
}

// handlePress is the shared press path: translate, dispatch, count,
// report.
func handlePress(line int, translator *notify.Translator, dispatcher *notify.Dispatcher,
	publisher mqtt.Publisher, tracker *status.Tracker) {

	kind := translator.KindFor(line)
	log.Printf("line %d pressed: %v", line, kind)

	dispatcher.Notify(kind)

	tracker.CountPress(kind)
	tracker.SetCompanionPids(len(dispatcher.Cached()))

	if publisher != nil {
		event := mqtt.PressEvent{
			Timestamp: time.Now(),
			Line:      line,
			Kind:      kind.String(),
			Signal:    kind.SignalName(),
			Targets:   len(dispatcher.Cached()),
		}
		if err := publisher.Publish(event); err != nil {
			log.Printf("publish press: %v", err)
		}
	}
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}

func publishStartup(publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker) {
	if publisher == nil {
		return
	}
	if mqttStatus != nil {
		tracker.SetMQTTConnected(mqttStatus.IsConnected())
	}
	snap := tracker.Snapshot()
	event := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(event); err != nil {
		log.Printf("publish startup event: %v", err)
	}
}

func publishShutdown(publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, s os.Signal) {
	if publisher == nil {
		return
	}
	reason := signalName(s)
	if mqttStatus != nil {
		tracker.SetMQTTConnected(mqttStatus.IsConnected())
	}
	snap := tracker.Snapshot()
	event := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "SHUTDOWN",
		Reason:     reason,
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "SHUTDOWN", reason),
	}
	if err := publisher.PublishSystem(event); err != nil {
		log.Printf("publish shutdown event: %v", err)
	}
}
