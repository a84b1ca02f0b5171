package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-contactinfo/internal/config"
	"github.com/tartampluch/go-contactinfo/internal/contact"
	"github.com/tartampluch/go-contactinfo/internal/importer"
	"github.com/tartampluch/go-contactinfo/internal/server"
	"github.com/tartampluch/go-contactinfo/internal/ui"
)

// main delegates to runMain so deferred closes run before os.Exit.
func main() {
	os.Exit(runMain())
}

// runMain parses flags, sets up logging and signals, then runs the app.
// It returns the process exit code.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. Flags
	// -------------------------------------------------------------------------
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	storePath := flag.String(config.FlagFile, "", config.FlagDescFile)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging
	// -------------------------------------------------------------------------
	// Installed before anything else so a broken address book is logged to file too.
	logCloser := setupLogging(*debugMode)
	if logCloser != nil {
		defer func() { _ = logCloser.Close() }()
	}

	// -------------------------------------------------------------------------
	// 3. Signals
	// -------------------------------------------------------------------------
	// Ctrl+C or SIGTERM cancels ctx, which stops the export server and quits fyne.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application
	// -------------------------------------------------------------------------
	if err := run(ctx, *storePath); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run opens the address book, wires the services, and blocks in the UI loop.
func run(ctx context.Context, storePath string) error {
	// Without -file the address book lives next to the log file.
	if storePath == "" {
		dir, err := appCacheDir()
		if err != nil {
			return err
		}
		storePath = filepath.Join(dir, config.StoreFileName)
	}

	// A corrupt file is fatal: starting empty would overwrite it on the first edit.
	store, err := contact.OpenFileStore(storePath)
	if err != nil {
		return err
	}

	a := app.NewWithID(config.AppID)
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	// The port is read once; a change in the settings window applies on restart.
	port := a.Preferences().StringWithFallback(config.PrefServerPort, config.DefaultPort)
	gui := ui.NewContactsApp(a, ctx, store, server.NewExportServer(port), importer.NewHTTPFetcher())

	// Bridge signal cancellation to the fyne event loop.
	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	// Blocks until the last window closes or a.Quit is called.
	gui.Run()
	return nil
}

// printVersion writes the -version line to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging installs a JSON slog handler writing to stdout and, when
// possible, a log file truncated at each start.
func setupLogging(debugMode bool) io.Closer {
	writers := []io.Writer{os.Stdout}
	var logFile *os.File

	// The file is truncated at each start so it never grows unbounded.
	if dir, err := appCacheDir(); err == nil {
		logPath := filepath.Join(dir, config.LogFileName)
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// appCacheDir returns the per-user application directory, creating it 0700.
func appCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	dir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	return dir, nil
}
