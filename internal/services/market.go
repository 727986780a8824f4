package services

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// Same-day NAV orders must be placed before the 14:00 IST cutoff, so runs
// after that (or on weekends) have nothing actionable to report.
const navCutoffHour = 14

func istLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		log.Errorf("Failed to load location 'Asia/Kolkata': %v. Falling back to UTC.", err)
		return time.UTC
	}
	return loc
}

// MarketOpen reports whether input falls within the actionable window:
// a weekday before the same-day NAV cutoff, in Indian Standard Time.
func MarketOpen(input time.Time) bool {
	nowIST := input.In(istLocation())

	if nowIST.Weekday() == time.Saturday || nowIST.Weekday() == time.Sunday {
		return false
	}

	cutoff := time.Date(nowIST.Year(), nowIST.Month(), nowIST.Day(), navCutoffHour, 0, 0, 0, nowIST.Location())
	return nowIST.Before(cutoff)
}
