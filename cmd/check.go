package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/wharf-watcher/internal/config"
	"github.com/example/wharf-watcher/internal/notify"
	"github.com/example/wharf-watcher/internal/watcher"
)

func newCheckCmd() *cobra.Command {
	var (
		date      string
		party     int
		slotStart int
		slotEnd   int
		force     bool
	)

	c := &cobra.Command{
		Use:   "check",
		Short: "Run one availability check and notify if slots are open",
		Long: "Runs a single check cycle: within the notify window, queries the\n" +
			"timetable for every seat category and pushes a LINE message (or prints\n" +
			"it when no credentials are configured) if anything is open.\n" +
			"Intended to be invoked from cron or a systemd timer.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("date") {
				if _, err := time.Parse("2006-01-02", date); err != nil {
					return fmt.Errorf("invalid --date (want YYYY-MM-DD)")
				}
				cfg.TargetDate = date
			}
			if cmd.Flags().Changed("party") {
				cfg.PartySize = party
			}
			if cmd.Flags().Changed("slot-start") {
				cfg.SlotStartHour = slotStart
			}
			if cmd.Flags().Changed("slot-end") {
				cfg.SlotEndHour = slotEnd
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			w := watcher.Watcher{
				Cfg:   cfg,
				Sink:  notify.FromConfig(cfg.LineToken, cfg.LineToUserID),
				Force: force,
			}
			return w.Run(cmd.Context())
		},
	}

	c.Flags().StringVar(&date, "date", "", "target date YYYY-MM-DD (overrides TARGET_DATE)")
	c.Flags().IntVar(&party, "party", 2, "party size (overrides PARTY)")
	c.Flags().IntVar(&slotStart, "slot-start", 18, "desired slot window start hour (overrides SLOT_START_HOUR)")
	c.Flags().IntVar(&slotEnd, "slot-end", 20, "desired slot window end hour (overrides SLOT_END_HOUR)")
	c.Flags().BoolVar(&force, "force", false, "run even outside the notify window")

	return c
}
