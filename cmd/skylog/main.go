// cmd/skylog/main.go
// Copyright(c) 2025 skylog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"skylog/api"
	"skylog/aviation"
	"skylog/log"
	"skylog/store"
	"skylog/util"

	"golang.org/x/sync/errgroup"
)

var (
	addr         = flag.String("addr", "localhost:8110", "address to serve the local API on")
	dataDir      = flag.String("datadir", "", "directory for flight log and user state (default: per-user config dir)")
	resourcesDir = flag.String("resources", "resources", "directory holding the aircraft and airport databases")
	logLevel     = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir       = flag.String("logdir", "", "log file directory")
	checkData    = flag.Bool("check", false, "validate the bundled databases and exit")
)

func main() {
	flag.Parse()

	lg := log.New(*logLevel, *logDir)
	defer lg.Infof("exiting")

	catalog := aviation.LoadCatalog(*resourcesDir, lg)
	lg.Infof("catalog: %d aircraft, %d airports", len(catalog.Aircraft), len(catalog.Airports))

	if *checkData {
		var e util.ErrorLogger
		catalog.CheckCatalog(&e)
		if e.HaveErrors() {
			e.PrintErrors(lg)
			os.Exit(1)
		}
		fmt.Println("databases ok")
		os.Exit(0)
	}

	dir := *dataDir
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			lg.Errorf("unable to find user config directory: %v", err)
			os.Exit(1)
		}
		dir = filepath.Join(dir, "skylog")
	}

	ds, err := store.New(catalog, dir, lg)
	if err != nil {
		lg.Errorf("%s: unable to open data store: %v", dir, err)
		os.Exit(1)
	}
	lg.Infof("data store: %s, %d logged flights, %d pending badges",
		dir, len(ds.Flights()), ds.PendingBadges())

	srv := &http.Server{Addr: *addr, Handler: api.New(ds, lg)}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Infof("serving on http://%s", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		lg.Errorf("server: %v", err)
		os.Exit(1)
	}
}
