package main

import (
	"fmt"
	"time"
)

// In-package fakes for the Surface/Element abstraction, shared by the day
// selector, slot negotiator and orchestrator tests.

type fakeElement struct {
	text      string
	failFirst int // number of leading Click calls that fail
	clicks    int
}

func (e *fakeElement) Click() error {
	e.clicks++
	if e.clicks <= e.failFirst {
		return fmt.Errorf("element detached")
	}
	return nil
}

func (e *fakeElement) ScrollIntoView() error { return nil }

func (e *fakeElement) WaitVisible(time.Duration) error { return nil }

func (e *fakeElement) Text() (string, error) { return e.text, nil }

type fakeSurface struct {
	reloads   int
	reloadErr error
	onReload  func()

	locate func(selector string) ([]Element, error)

	visible map[string]bool

	enabled  map[string]bool
	checkErr map[string]error
	clickErr map[string]error

	filled      map[string]string
	clicks      []string
	checked     []string
	screenshots []string

	children map[string]*fakeSurface
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		visible:  map[string]bool{},
		enabled:  map[string]bool{},
		checkErr: map[string]error{},
		clickErr: map[string]error{},
		filled:   map[string]string{},
		children: map[string]*fakeSurface{},
	}
}

func (s *fakeSurface) Fill(selector, value string) error {
	s.filled[selector] = value
	return nil
}

func (s *fakeSurface) Click(selector string) error {
	s.clicks = append(s.clicks, selector)
	return s.clickErr[selector]
}

func (s *fakeSurface) WaitVisible(selector string, _ time.Duration) error {
	if s.visible[selector] {
		return nil
	}
	return fmt.Errorf("timeout waiting for %s", selector)
}

func (s *fakeSurface) Reload() error {
	s.reloads++
	if s.onReload != nil {
		s.onReload()
	}
	return s.reloadErr
}

func (s *fakeSurface) Locate(selector string) ([]Element, error) {
	if s.locate == nil {
		return nil, nil
	}
	return s.locate(selector)
}

func (s *fakeSurface) OpenChild(trigger string) (Surface, error) {
	s.clicks = append(s.clicks, trigger)
	child, ok := s.children[trigger]
	if !ok {
		return nil, fmt.Errorf("no child surface for %s", trigger)
	}
	return child, nil
}

func (s *fakeSurface) IsEnabled(selector string) (bool, error) {
	if v, ok := s.enabled[selector]; ok {
		return v, nil
	}
	return true, nil
}

func (s *fakeSurface) SetChecked(selector string) error {
	if err := s.checkErr[selector]; err != nil {
		return err
	}
	s.checked = append(s.checked, selector)
	return nil
}

func (s *fakeSurface) Screenshot(path string) error {
	s.screenshots = append(s.screenshots, path)
	return nil
}

type fakeSession struct {
	surface  *fakeSurface
	startErr error
	started  bool
	closed   bool
}

func (s *fakeSession) Start() error {
	s.started = true
	return s.startErr
}

func (s *fakeSession) LoginSurface() (Surface, error) {
	return s.surface, nil
}

func (s *fakeSession) Close() {
	s.closed = true
}
