package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Surface is one independently navigable browser document the flow
// interacts with. The booking logic only ever talks to this interface, so
// the engine stays swappable and the retry loops stay testable without a
// live browser.
type Surface interface {
	Fill(selector, value string) error
	Click(selector string) error
	WaitVisible(selector string, timeout time.Duration) error
	Reload() error
	// Locate returns zero or more matching elements without waiting.
	Locate(selector string) ([]Element, error)
	// OpenChild registers interest in the next page opened by this surface,
	// clicks the trigger, and returns the new surface once it has loaded.
	OpenChild(triggerSelector string) (Surface, error)
	IsEnabled(selector string) (bool, error)
	SetChecked(selector string) error
	Screenshot(path string) error
}

// Element is a single located control on a Surface.
type Element interface {
	Click() error
	ScrollIntoView() error
	WaitVisible(timeout time.Duration) error
	Text() (string, error)
}

type rodSurface struct {
	page     *rod.Page
	interact time.Duration
	nav      time.Duration
}

func newRodSurface(page *rod.Page, interact, nav time.Duration) *rodSurface {
	return &rodSurface{page: page, interact: interact, nav: nav}
}

func (s *rodSurface) element(selector string) (*rod.Element, error) {
	return s.page.Timeout(s.interact).Element(selector)
}

func (s *rodSurface) Fill(selector, value string) error {
	el, err := s.element(selector)
	if err != nil {
		return fmt.Errorf("fill %s: %w", selector, err)
	}
	el.SelectAllText()
	if err := el.Input(value); err != nil {
		return fmt.Errorf("fill %s: %w", selector, err)
	}
	return nil
}

func (s *rodSurface) Click(selector string) error {
	el, err := s.element(selector)
	if err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	el.ScrollIntoView()
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

func (s *rodSurface) WaitVisible(selector string, timeout time.Duration) error {
	el, err := s.page.Timeout(timeout).Element(selector)
	if err != nil {
		return fmt.Errorf("wait visible %s: %w", selector, err)
	}
	if err := el.Timeout(timeout).WaitVisible(); err != nil {
		return fmt.Errorf("wait visible %s: %w", selector, err)
	}
	return nil
}

func (s *rodSurface) Reload() error {
	if err := s.page.Reload(); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	if err := s.page.Timeout(s.nav).WaitLoad(); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	return nil
}

func (s *rodSurface) Locate(selector string) ([]Element, error) {
	els, err := s.page.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("locate %s: %w", selector, err)
	}
	found := make([]Element, 0, len(els))
	for _, el := range els {
		found = append(found, &rodElement{el: el})
	}
	return found, nil
}

func (s *rodSurface) OpenChild(triggerSelector string) (Surface, error) {
	// Subscribe before clicking so the new-page event cannot race the click.
	wait := s.page.WaitOpen()

	if err := s.Click(triggerSelector); err != nil {
		return nil, err
	}

	child, err := wait()
	if err != nil {
		return nil, fmt.Errorf("open child via %s: %w", triggerSelector, err)
	}
	if err := child.Timeout(s.nav).WaitLoad(); err != nil {
		return nil, fmt.Errorf("open child via %s: %w", triggerSelector, err)
	}
	return newRodSurface(child, s.interact, s.nav), nil
}

func (s *rodSurface) IsEnabled(selector string) (bool, error) {
	el, err := s.element(selector)
	if err != nil {
		return false, fmt.Errorf("is enabled %s: %w", selector, err)
	}
	disabled, err := el.Property("disabled")
	if err != nil {
		return false, fmt.Errorf("is enabled %s: %w", selector, err)
	}
	return !disabled.Bool(), nil
}

func (s *rodSurface) SetChecked(selector string) error {
	el, err := s.element(selector)
	if err != nil {
		return fmt.Errorf("set checked %s: %w", selector, err)
	}
	checked, err := el.Property("checked")
	if err == nil && checked.Bool() {
		return nil
	}
	el.ScrollIntoView()
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("set checked %s: %w", selector, err)
	}
	return nil
}

func (s *rodSurface) Screenshot(path string) error {
	data, err := s.page.Screenshot(true, nil)
	if err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	return nil
}

type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Click() error {
	return e.el.Click(proto.InputMouseButtonLeft, 1)
}

func (e *rodElement) ScrollIntoView() error {
	return e.el.ScrollIntoView()
}

func (e *rodElement) WaitVisible(timeout time.Duration) error {
	return e.el.Timeout(timeout).WaitVisible()
}

func (e *rodElement) Text() (string, error) {
	return e.el.Text()
}
