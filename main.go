package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/arvindkn/fundtracker/config"
	"github.com/arvindkn/fundtracker/internal/portfolio"
	"github.com/arvindkn/fundtracker/internal/services"
	"github.com/arvindkn/fundtracker/internal/telegram"
	"github.com/arvindkn/fundtracker/internal/yahoo"
	log "github.com/sirupsen/logrus"
)

const defaultPortfolioPath = "portfolio.csv"

func main() {
	os.Exit(run())
}

func run() int {
	ignoreMarketHours := flag.Bool("ignore-market-hours", false,
		"run even on weekends or after the same-day NAV cutoff")
	flag.Parse()

	setupLogging()

	cfg, err := config.Load()
	if err != nil {
		log.Errorf("Failed to load configuration: %v", err)
		return 1
	}

	// Positional arguments: [portfolio.csv [threshold]]
	path := defaultPortfolioPath
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	threshold := cfg.Threshold
	if flag.NArg() > 1 {
		threshold, err = strconv.ParseFloat(flag.Arg(1), 64)
		if err != nil {
			log.Errorf("Invalid threshold %q: %v", flag.Arg(1), err)
			return 1
		}
	}

	if !*ignoreMarketHours && !services.MarketOpen(time.Now()) {
		log.Info("Outside trading hours or weekend, nothing to do")
		return 0
	}

	constituents, err := portfolio.Load(path)
	if err != nil {
		if errors.Is(err, portfolio.ErrEmptyPortfolio) {
			log.Errorf("Portfolio file %s: %v", path, err)
		} else {
			log.Errorf("Failed to load portfolio: %v", err)
		}
		return 1
	}
	log.Infof("Loaded %d constituents from %s", len(constituents), path)

	notifier := telegram.NewClient(cfg.TelegramToken, cfg.TelegramChatID)
	tracker := services.NewTracker(yahoo.NewClient(), notifier)

	report, err := tracker.Run(context.Background(), constituents, threshold)
	if err != nil {
		log.Errorf("Run failed: %v", err)
		return 1
	}

	log.Infof("Fund return %.2f%% (%d fetched, %d skipped)",
		report.FundReturn, report.Fetched, report.Skipped)
	return 0
}

// setupLogging tees log output to stderr and fund_tracker.log, matching the
// file the scheduled job archives.
func setupLogging() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	f, err := os.OpenFile("fund_tracker.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Warnf("Failed to open log file: %v", err)
		return
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
}
