package interact

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Fixed is a non-interactive PromptDriver. Every confirmation is answered with
// the configured value and messages are recorded (and optionally echoed).
// Free-form prompts fail with ErrNoAnswer.
type Fixed struct {
	answer bool
	out    io.Writer

	mu       sync.Mutex
	messages []string
	prompts  []string
}

// NewFixed returns a driver answering every confirmation with answer. out may
// be nil.
func NewFixed(answer bool, out io.Writer) *Fixed {
	return &Fixed{answer: answer, out: out}
}

// Messages returns the Info and Warn messages received so far.
func (f *Fixed) Messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

func (f *Fixed) Input(_ context.Context, cfg InputConfig) (string, error) {
	if cfg.Default != "" {
		return cfg.Default, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNoAnswer, cfg.Message)
}

func (f *Fixed) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	f.mu.Lock()
	f.prompts = append(f.prompts, cfg.Message)
	f.mu.Unlock()
	return f.answer, nil
}

// Prompts returns the confirmation questions asked so far.
func (f *Fixed) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

func (f *Fixed) Select(_ context.Context, cfg SelectConfig) (int, error) {
	return -1, fmt.Errorf("%w: %s", ErrNoAnswer, cfg.Message)
}

func (f *Fixed) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	return nil, fmt.Errorf("%w: %s", ErrNoAnswer, cfg.Message)
}

func (f *Fixed) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	if cfg.Default != "" {
		return cfg.Default, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNoAnswer, cfg.Message)
}

func (f *Fixed) Info(_ context.Context, msg string) error {
	return f.record(msg)
}

func (f *Fixed) Warn(_ context.Context, msg string) error {
	return f.record(msg)
}

func (f *Fixed) record(msg string) error {
	f.mu.Lock()
	f.messages = append(f.messages, msg)
	f.mu.Unlock()
	if f.out == nil {
		return nil
	}
	_, err := fmt.Fprintln(f.out, msg)
	return err
}
