package main

import (
	"flag"
	"fmt"
	"os"
	"time"
)

func main() {
	configPath := flag.String("config", "booking_config.yaml", "Path to configuration file")
	user := flag.String("user", "", "Portal username (overrides config)")
	pass := flag.String("pass", "", "Portal password (overrides config)")
	date := flag.String("date", "", "Target date, e.g. 25/01 or '25 gennaio' (overrides -day/-month)")
	day := flag.Int("day", 0, "Target day of month (overrides config)")
	month := flag.Int("month", 0, "Target month 1-12 (overrides config)")
	slot := flag.Int("slot", -1, "Primary time slot index 0-3 (overrides config)")
	wait := flag.Bool("wait", false, "Wait until just before midnight, when new days unlock")
	tryOthers := flag.Bool("try-others", false, "Fall back to the other slots if the primary one fails")
	attempts := flag.Int("attempts", 0, "Day click attempts (overrides config)")
	startEarly := flag.Int("start-early", 0, "Seconds before midnight to resume (overrides config)")
	remember := flag.Bool("remember", false, "Save the submitted values to the config file")
	headless := flag.Bool("headless", false, "Run the browser headless")
	flag.Parse()

	config := LoadConfig(*configPath)

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["user"] {
		config.Username = *user
	}
	if set["pass"] {
		config.Password = *pass
	}
	if set["day"] {
		config.Day = *day
	}
	if set["month"] {
		config.Month = *month
	}
	if set["date"] {
		d, m, err := ParseTargetDate(*date, time.Now())
		if err != nil {
			fmt.Printf("Invalid -date: %v\n", err)
			os.Exit(2)
		}
		config.Day, config.Month = d, m
	}
	if set["slot"] {
		config.SlotIndex = *slot
	}
	if set["wait"] {
		config.WaitForMidnight = *wait
	}
	if set["try-others"] {
		config.TryOtherSlots = *tryOthers
	}
	if set["attempts"] {
		config.DayAttempts = *attempts
	}
	if set["start-early"] {
		config.StartEarlySeconds = *startEarly
	}
	if set["headless"] {
		config.Headless = *headless
	}

	request := BookingRequest{
		Username:          config.Username,
		Password:          config.Password,
		Day:               config.Day,
		Month:             config.Month,
		PrimarySlot:       Slot(config.SlotIndex),
		TryOtherSlots:     config.TryOtherSlots,
		WaitForMidnight:   config.WaitForMidnight,
		DayAttempts:       config.DayAttempts,
		StartEarlySeconds: config.StartEarlySeconds,
	}

	fmt.Println("╔═══════════════════════════════════════════════════════════╗")
	fmt.Println("║                     Gym Booking Bot                       ║")
	fmt.Println("╚═══════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("Target date: %02d/%02d | Slot: %s\n", request.Day, request.Month, request.PrimarySlot.Label())
	if request.WaitForMidnight {
		fmt.Printf("⏰ MIDNIGHT MODE - resuming %ds before the unlock\n", request.StartEarlySeconds)
	}
	if request.TryOtherSlots {
		fmt.Println("🔁 FALLBACK MODE - other slots will be tried in order")
	}
	fmt.Println()

	if *remember {
		fmt.Println("⚠️  Saving config with the password in clear text; protect the file.")
		if err := config.Save(*configPath); err != nil {
			fmt.Printf("Failed to save config: %v\n", err)
		}
	}

	queue := NewLogQueue()
	booker := NewBooker(config, NewSession(config), queue.Put)

	if config.SyncClock {
		clock := NewClock()
		if err := clock.Sync(); err != nil {
			fmt.Printf("Clock sync failed (%v); using the local clock.\n", err)
		} else {
			fmt.Printf("Clock synced (offset %v).\n", clock.Offset().Round(time.Millisecond))
			booker.UseClock(clock)
		}
	}

	go func() {
		if err := booker.Run(request); err != nil {
			queue.Put(errorMessage(err))
		} else {
			queue.Put(doneMessage(artifactPath))
		}
	}()

	os.Exit(display(queue, request.WaitForMidnight))
}

// display is the front-end polling loop: drains the log queue on a fixed
// interval, keeps a live countdown line while waiting for midnight, and
// turns the terminal sentinel into the exit code.
func display(queue *LogQueue, countdown bool) int {
	drainTick := time.NewTicker(200 * time.Millisecond)
	defer drainTick.Stop()
	countdownTick := time.NewTicker(500 * time.Millisecond)
	defer countdownTick.Stop()

	clearLine := func() {
		if countdown {
			fmt.Print("\r\033[K")
		}
	}

	for {
		select {
		case <-drainTick.C:
			for _, msg := range queue.Drain() {
				status, payload := classify(msg)
				switch status {
				case feedDone:
					clearLine()
					fmt.Println()
					fmt.Println("✓ Booking flow finished.")
					fmt.Printf("  Result artifact: %s\n", payload)
					return 0
				case feedError:
					clearLine()
					fmt.Println()
					fmt.Printf("✗ Booking failed: %s\n", payload)
					return 1
				default:
					clearLine()
					fmt.Println(payload)
				}
			}
		case <-countdownTick.C:
			if countdown {
				remaining := time.Until(nextMidnight(time.Now()))
				fmt.Printf("\rCountdown: %s ", formatCountdown(remaining))
			}
		}
	}
}
