// Package watcher runs one availability check end to end: gate on the
// notify window, bootstrap a TableCheck session, query the timetable per
// seat category, and push a summary when anything is open.
package watcher

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/example/wharf-watcher/internal/availability"
	"github.com/example/wharf-watcher/internal/config"
	"github.com/example/wharf-watcher/internal/notify"
	"github.com/example/wharf-watcher/internal/tablecheck"
)

type Watcher struct {
	Cfg  config.Config
	Sink notify.Sink

	// Force bypasses the notify-window gate.
	Force bool

	// Now overrides the clock in tests; nil means time.Now.
	Now func() time.Time
}

// Run executes one check. All designed failure paths log and return nil so
// a scheduled invocation exits 0; category-level fetch failures skip only
// that category.
func (w Watcher) Run(ctx context.Context) error {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	nowLocal := now().In(w.Cfg.Location)

	if !w.Force && !availability.WithinWindow(nowLocal, w.Cfg.NotifyStartHour, w.Cfg.NotifyEndHour) {
		log.Printf("[%s] skip (outside notify window %d-%d)",
			nowLocal.Format("2006-01-02 15:04:05"), w.Cfg.NotifyStartHour, w.Cfg.NotifyEndHour)
		return nil
	}

	log.Printf("[%s] start check", nowLocal.Format("2006-01-02 15:04:05"))

	sess, err := tablecheck.NewSession(ctx, w.Cfg.ReserveURL)
	if err != nil {
		log.Printf("[ERROR] failed to fetch CSRF token: %v", err)
		return nil
	}

	timetableURL, err := tablecheck.TimetableURL(w.Cfg.ReserveURL)
	if err != nil {
		log.Printf("[ERROR] failed to build timetable URL: %v", err)
		return nil
	}

	lines := []string{fmt.Sprintf("【%s】%s %d:00〜%d:00 の空き状況",
		w.Cfg.VenueName, w.Cfg.TargetDate, w.Cfg.SlotStartHour, w.Cfg.SlotEndHour)}
	anyAvailable := false

	for _, seat := range w.Cfg.SeatCategories {
		tt, err := sess.FetchTimetable(ctx, timetableURL, w.Cfg.TargetDate, seat.ServiceCategory, w.Cfg.PartySize, w.Cfg.ReserveURL)
		if err != nil {
			log.Printf("[ERROR] timetable fetch failed [%s]: %v", seat.Label, err)
			continue
		}

		times := availability.AvailableTimes(tt, w.Cfg.TargetDate, w.Cfg.SlotStartHour, w.Cfg.SlotEndHour)
		if len(times) == 0 {
			log.Printf("  - no availability [%s]", seat.Label)
			continue
		}

		anyAvailable = true
		hm := make([]string, 0, len(times))
		for _, s := range times {
			hm = append(hm, availability.SecToHM(s))
		}
		joined := strings.Join(hm, ", ")
		log.Printf("  - available [%s]: %s", seat.Label, joined)
		lines = append(lines, fmt.Sprintf("- %s: %s", seat.Label, joined))
	}

	if !anyAvailable {
		log.Printf("no slots found; no LINE push")
		return nil
	}

	lines = append(lines, "", w.Cfg.ReserveURL)
	if err := w.Sink.Push(ctx, strings.Join(lines, "\n")); err != nil {
		log.Printf("[WARN] LINE push failed: %v", err)
	}
	return nil
}
