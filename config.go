package main

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the persisted key-value record plus runtime tuning. The booking
// fields mirror BookingRequest; the rest never leaves the machine. The
// password is stored in clear text when the user asks to remember it, which
// the front-end warns about at save time.
type Config struct {
	Username          string `yaml:"username"`
	Password          string `yaml:"password"`
	Day               int    `yaml:"day"`
	Month             int    `yaml:"month"`
	SlotIndex         int    `yaml:"slot_idx"`
	WaitForMidnight   bool   `yaml:"wait_midnight"`
	TryOtherSlots     bool   `yaml:"try_other_slots"`
	DayAttempts       int    `yaml:"day_attempts"`
	StartEarlySeconds int    `yaml:"start_early_seconds"`

	PortalLocale       string `yaml:"portal_locale"`
	Headless           bool   `yaml:"headless"`
	BrowserProfilePath string `yaml:"browser_profile_path"`
	SyncClock          bool   `yaml:"sync_clock"`

	ViewportWidth  int `yaml:"viewport_width"`
	ViewportHeight int `yaml:"viewport_height"`

	InteractionTimeoutMs int `yaml:"interaction_timeout_ms"`
	NavigationTimeoutMs  int `yaml:"navigation_timeout_ms"`
	DayRetryDelayMs      int `yaml:"day_retry_delay_ms"`
}

func DefaultConfig() *Config {
	return &Config{
		SlotIndex:         0,
		DayAttempts:       5,
		StartEarlySeconds: 30,

		PortalLocale: defaultPortalLocale,
		Headless:     false,
		SyncClock:    true,

		ViewportWidth:  1280,
		ViewportHeight: 900,

		InteractionTimeoutMs: int(defaultInteractionTimeout / time.Millisecond),
		NavigationTimeoutMs:  int(defaultNavigationTimeout / time.Millisecond),
		DayRetryDelayMs:      50,
	}
}

// LoadConfig reads the persisted config if present. A missing or unreadable
// file is not an error: the defaults win and the bad file is left alone.
func LoadConfig(path string) *Config {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig()
	}
	config.fillZeroes()
	return config
}

// fillZeroes restores defaults for tuning fields an older or hand-edited
// config file leaves at zero.
func (c *Config) fillZeroes() {
	d := DefaultConfig()
	if c.DayAttempts <= 0 {
		c.DayAttempts = d.DayAttempts
	}
	if c.StartEarlySeconds <= 0 {
		c.StartEarlySeconds = d.StartEarlySeconds
	}
	if c.PortalLocale == "" {
		c.PortalLocale = d.PortalLocale
	}
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = d.ViewportWidth
	}
	if c.ViewportHeight <= 0 {
		c.ViewportHeight = d.ViewportHeight
	}
	if c.InteractionTimeoutMs <= 0 {
		c.InteractionTimeoutMs = d.InteractionTimeoutMs
	}
	if c.NavigationTimeoutMs <= 0 {
		c.NavigationTimeoutMs = d.NavigationTimeoutMs
	}
	if c.DayRetryDelayMs <= 0 {
		c.DayRetryDelayMs = d.DayRetryDelayMs
	}
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func (c *Config) interactionTimeout() time.Duration {
	return time.Duration(c.InteractionTimeoutMs) * time.Millisecond
}

func (c *Config) navigationTimeout() time.Duration {
	return time.Duration(c.NavigationTimeoutMs) * time.Millisecond
}

func (c *Config) dayRetryDelay() time.Duration {
	return time.Duration(c.DayRetryDelayMs) * time.Millisecond
}
