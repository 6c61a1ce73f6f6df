package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// BrowserSession owns the browser process for one booking flow: acquired at
// flow start, used by a single execution path, released on every exit path.
type BrowserSession interface {
	Start() error
	// LoginSurface navigates to the portal login page and returns its surface.
	LoginSurface() (Surface, error)
	Close()
}

type Session struct {
	config   *Config
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

func NewSession(config *Config) *Session {
	return &Session{config: config}
}

func (s *Session) Start() error {
	// Disable leakless mode on Windows to prevent deadlock
	// See: https://github.com/go-rod/rod/issues/853
	useLeakless := runtime.GOOS != "windows"

	s.launcher = launcher.New().
		Leakless(useLeakless).
		Headless(s.config.Headless)

	if s.config.BrowserProfilePath != "" {
		s.launcher = s.launcher.UserDataDir(s.config.BrowserProfilePath)
	}

	// Prefer system Chrome; fall back to rod's managed Chromium download.
	if chromePath, ok := launcher.LookPath(); ok {
		s.launcher = s.launcher.Bin(chromePath)
	}

	url, err := s.launcher.Launch()
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	s.browser = rod.New().ControlURL(url)
	if err := s.browser.Connect(); err != nil {
		return fmt.Errorf("failed to connect to browser: %w", err)
	}

	s.page, err = stealth.Page(s.browser)
	if err != nil {
		return fmt.Errorf("failed to create stealth page: %w", err)
	}

	err = s.page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  s.config.ViewportWidth,
		Height: s.config.ViewportHeight,
	})
	if err != nil {
		return fmt.Errorf("failed to set viewport: %w", err)
	}

	return nil
}

func (s *Session) LoginSurface() (Surface, error) {
	if s.page == nil {
		return nil, fmt.Errorf("session not started")
	}

	if err := s.page.Navigate(urlLogin); err != nil {
		return nil, fmt.Errorf("failed to navigate to login page: %w", err)
	}
	if err := s.page.Timeout(s.config.navigationTimeout()).WaitLoad(); err != nil {
		return nil, fmt.Errorf("login page failed to load: %w", err)
	}

	return newRodSurface(s.page, s.config.interactionTimeout(), s.config.navigationTimeout()), nil
}

func (s *Session) Close() {
	if s.page != nil {
		s.page.Close()
	}
	if s.browser != nil {
		s.browser.Close()
	}
	if s.launcher != nil {
		s.launcher.Cleanup()
	}
}

// Interaction/navigation defaults the portal tolerates well.
const (
	defaultInteractionTimeout = 6 * time.Second
	defaultNavigationTimeout  = 8 * time.Second
)
