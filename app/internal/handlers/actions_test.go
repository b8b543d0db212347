package handlers

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/marketconnect/cursor-stats/app/internal/i18n"
)

type mockCache struct {
	InvalidateFunc func() error
	calls          int
}

func (m *mockCache) Invalidate() error {
	m.calls++
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc()
	}
	return nil
}

type mockOpener struct {
	OpenFunc func(ctx context.Context, url string) error
	opened   []string
}

func (m *mockOpener) Open(ctx context.Context, url string) error {
	m.opened = append(m.opened, url)
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, url)
	}
	return nil
}

func TestIsAction(t *testing.T) {
	for _, q := range []string{"refresh", "open_cursor_settings", "premium_requests", "usage_based_pricing", "account_info"} {
		if !IsAction(q) {
			t.Errorf("IsAction(%q) = false", q)
		}
	}
	for _, q := range []string{"", "error", "REFRESH", "gpt"} {
		if IsAction(q) {
			t.Errorf("IsAction(%q) = true", q)
		}
	}
}

func TestActionHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		lang       string
		action     string
		wantOut    string
		wantClears int
		wantOpened int
	}{
		{"refresh zh", "zh", "refresh", "数据已刷新\n", 1, 0},
		{"refresh en", "en", "refresh", "Data refreshed\n", 1, 0},
		{"settings", "zh", "open_cursor_settings", "", 0, 1},
		{"copy premium", "zh", "premium_requests", "已选择 premium_requests\n", 0, 0},
		{"copy spend", "en", "usage_based_pricing", "Selected usage_based_pricing\n", 0, 0},
		{"copy account", "en", "account_info", "Selected account_info\n", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &mockCache{}
			o := &mockOpener{}
			h := NewActionHandler(c, o, i18n.New(tt.lang), nil)

			var out bytes.Buffer
			if err := h.Handle(context.Background(), tt.action, &out); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			if out.String() != tt.wantOut {
				t.Errorf("output = %q, want %q", out.String(), tt.wantOut)
			}
			if c.calls != tt.wantClears {
				t.Errorf("Invalidate calls = %d, want %d", c.calls, tt.wantClears)
			}
			if len(o.opened) != tt.wantOpened {
				t.Errorf("opened = %v", o.opened)
			}
			if tt.wantOpened > 0 && o.opened[0] != SettingsURL {
				t.Errorf("opened %q, want %q", o.opened[0], SettingsURL)
			}
		})
	}
}

func TestActionHandler_Errors(t *testing.T) {
	boom := errors.New("boom")
	c := &mockCache{InvalidateFunc: func() error { return boom }}
	o := &mockOpener{OpenFunc: func(context.Context, string) error { return boom }}
	h := NewActionHandler(c, o, i18n.New("en"), nil)

	var out bytes.Buffer
	if err := h.Handle(context.Background(), "refresh", &out); !errors.Is(err, boom) {
		t.Errorf("refresh error = %v, want boom", err)
	}
	if out.Len() != 0 {
		t.Errorf("refresh wrote %q on failure", out.String())
	}
	if err := h.Handle(context.Background(), "open_cursor_settings", &out); !errors.Is(err, boom) {
		t.Errorf("settings error = %v, want boom", err)
	}
	if err := h.Handle(context.Background(), "nope", &out); err == nil {
		t.Error("unknown action error = nil")
	}
}

func TestSystemOpener_Command(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs int
	}{
		{"darwin", "open", 1},
		{"linux", "xdg-open", 1},
		{"windows", "rundll32", 2},
	}
	for _, tt := range tests {
		name, args := (&SystemOpener{goos: tt.goos}).command(SettingsURL)
		if name != tt.wantName || len(args) != tt.wantArgs || args[len(args)-1] != SettingsURL {
			t.Errorf("%s: command = %s %v", tt.goos, name, args)
		}
	}
}
