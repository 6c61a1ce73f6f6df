package main

import (
	"fmt"
	"time"
)

// BookingRequest carries everything one booking run needs. It is built once
// from front-end input and never mutated afterwards.
type BookingRequest struct {
	Username          string
	Password          string
	Day               int
	Month             int
	PrimarySlot       Slot
	TryOtherSlots     bool
	WaitForMidnight   bool
	DayAttempts       int
	StartEarlySeconds int
}

func (r BookingRequest) validate() error {
	if r.Username == "" || r.Password == "" {
		return fmt.Errorf("username and password are required")
	}
	if !r.PrimarySlot.Valid() {
		return fmt.Errorf("slot index %d out of range 0-%d", int(r.PrimarySlot), slotCount-1)
	}
	if r.DayAttempts < 1 {
		return fmt.Errorf("day attempts must be at least 1")
	}
	if r.StartEarlySeconds < 0 {
		return fmt.Errorf("start-early seconds must not be negative")
	}
	return validateDayMonth(r.Day, r.Month, time.Now().Year())
}

// How long to wait for the post-login navigation marker before treating the
// login attempt as unconfirmed.
const loginMarkerTimeout = 4 * time.Second

// Settle delay between waking from the midnight wait and reloading the
// booking surface.
const postWaitSettle = 200 * time.Millisecond

// Progress cadence during long midnight waits.
const (
	waitChunk         = 30 * time.Second
	waitChunksPerNote = 10
)

// Booker drives one booking flow end to end. It owns no UI state: progress
// leaves only through the log sink.
type Booker struct {
	config  *Config
	session BrowserSession
	clock   *Clock
	log     func(string)

	// Injection points for the timed paths; production uses the real clock.
	now   func() time.Time
	sleep func(time.Duration)
}

func NewBooker(config *Config, session BrowserSession, log func(string)) *Booker {
	if log == nil {
		log = func(string) {}
	}
	return &Booker{
		config:  config,
		session: session,
		log:     log,
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

// UseClock makes the midnight computation run on the synced clock instead of
// the local one.
func (b *Booker) UseClock(clock *Clock) {
	b.clock = clock
}

func (b *Booker) timeNow() time.Time {
	if b.clock != nil {
		return b.clock.Now()
	}
	return b.now()
}

func (b *Booker) logf(format string, args ...interface{}) {
	b.log(fmt.Sprintf(format, args...))
}

// Run executes the whole flow: authenticate, navigate to the booking
// surface, optionally wait for midnight, select the day, submit a slot.
// The browser session is released on every exit path.
func (b *Booker) Run(req BookingRequest) error {
	if err := req.validate(); err != nil {
		return err
	}

	defer b.session.Close()

	if err := b.session.Start(); err != nil {
		return err
	}

	surface, err := b.session.LoginSurface()
	if err != nil {
		return &NavigationError{Step: "login page", Err: err}
	}
	b.log("Loaded login page.")

	if err := b.login(surface, req.Username, req.Password); err != nil {
		return err
	}
	b.log("Login successful.")

	if err := surface.Click(selNavPrenotazioni); err != nil {
		return &NavigationError{Step: "prenotazioni", Err: err}
	}
	b.log("Opened Prenotazioni.")

	free, err := surface.OpenChild(selFreeFitness)
	if err != nil {
		return &NavigationError{Step: "free fitness", Err: err}
	}
	b.log("Opened Free Fitness page.")

	b.logf("Target date: day %d, month %d (%s).", req.Day, req.Month, monthName(b.config.PortalLocale, req.Month))

	if req.WaitForMidnight {
		b.waitUntilNearMidnight(req.StartEarlySeconds)
		// Reload even when the wait was skipped: the just-unlocked day only
		// shows up on a fresh render.
		b.sleep(postWaitSettle)
		if err := free.Reload(); err != nil {
			return &NavigationError{Step: "post-wait reload", Err: err}
		}
	}

	b.log("Clicking target day...")
	err = clickDayWithRetry(free, req.Day, req.Month, req.DayAttempts,
		b.config.dayRetryDelay(), b.config.PortalLocale, b.log)
	if err != nil {
		return err
	}

	used, err := submitSlot(free, slotOrder(req.PrimarySlot, req.TryOtherSlots), b.log)
	if err != nil {
		return err
	}

	b.logf("Booking flow completed with %s (check %s or the portal for the outcome).", used, artifactPath)
	return nil
}

// login fills the credentials and waits for the post-login marker. One
// reload-and-retry on an unconfirmed first attempt, then authentication
// fails for good.
func (b *Booker) login(surface Surface, username, password string) error {
	attempt := func() bool {
		if err := surface.Fill(selUsername, username); err != nil {
			return false
		}
		if err := surface.Fill(selPassword, password); err != nil {
			return false
		}
		if err := surface.Click(selLoginBtn); err != nil {
			return false
		}
		return surface.WaitVisible(selNavPrenotazioni, loginMarkerTimeout) == nil
	}

	if attempt() {
		return nil
	}

	b.log("Login not confirmed; retrying once after reload...")
	if err := surface.Reload(); err != nil {
		return &AuthenticationError{Reason: fmt.Sprintf("reload before retry failed: %v", err)}
	}
	if attempt() {
		return nil
	}

	return &AuthenticationError{Reason: "login marker never appeared; credentials/selector may be wrong or a popup is blocking"}
}

// waitUntilNearMidnight suspends until startEarlySeconds before the next
// local midnight. When midnight is already that close, it returns
// immediately. The wait is chunked so progress notes keep flowing and the
// clock can resync during multi-hour waits.
func (b *Booker) waitUntilNearMidnight(startEarlySeconds int) {
	now := b.timeNow()
	remaining := secondsUntilMidnight(now)
	early := float64(startEarlySeconds)

	if remaining <= early {
		b.logf("Midnight is within %ds; starting immediately.", startEarlySeconds)
		return
	}

	target := nextMidnight(now).Add(-time.Duration(startEarlySeconds) * time.Second)
	b.logf("Waiting %.0fs (until %ds before midnight)...", remaining-early, startEarlySeconds)

	chunks := 0
	for {
		left := target.Sub(b.timeNow())
		if left <= 0 {
			return
		}
		if left < waitChunk {
			b.sleep(left)
			return
		}
		b.sleep(waitChunk)
		chunks++

		if b.clock != nil && b.clock.ShouldResync() {
			if err := b.clock.Sync(); err != nil {
				b.logf("Clock resync failed: %v", err)
			}
		}
		if chunks%waitChunksPerNote == 0 {
			b.logf("Still waiting: %s until wakeup.", formatCountdown(target.Sub(b.timeNow())))
		}
	}
}
