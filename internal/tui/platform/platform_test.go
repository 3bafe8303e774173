package platform

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestValidateChartURL(t *testing.T) {
	valid, err := ValidateChartURL(" https://www.tradingview.com/chart/?symbol=BINANCE%3ABTCUSDT ")
	if err != nil {
		t.Fatalf("unexpected error for valid URL: %v", err)
	}
	if valid != "https://www.tradingview.com/chart/?symbol=BINANCE%3ABTCUSDT" {
		t.Fatalf("unexpected normalized URL: %q", valid)
	}

	_, err = ValidateChartURL("ftp://example.com/path")
	if err == nil || !strings.Contains(err.Error(), "unsupported URL scheme") {
		t.Fatalf("expected unsupported scheme error, got %v", err)
	}

	_, err = ValidateChartURL("https://")
	if err == nil || !strings.Contains(err.Error(), "invalid URL host") {
		t.Fatalf("expected invalid host error, got %v", err)
	}

	if _, err := ValidateChartURL(""); err == nil {
		t.Fatal("expected error for empty URL")
	}
}

func TestBrowserCommand(t *testing.T) {
	cases := []struct {
		goos string
		url  string
		name string
		args []string
	}{
		{goos: "darwin", url: "https://example.com", name: "open", args: []string{"https://example.com"}},
		{goos: "windows", url: "https://example.com", name: "rundll32", args: []string{"url.dll,FileProtocolHandler", "https://example.com"}},
		{goos: "linux", url: "https://example.com", name: "xdg-open", args: []string{"https://example.com"}},
	}
	for _, tc := range cases {
		gotName, gotArgs := browserCommand(tc.goos, tc.url)
		if gotName != tc.name || !reflect.DeepEqual(gotArgs, tc.args) {
			t.Fatalf("browserCommand(%q) = (%q, %v), want (%q, %v)", tc.goos, gotName, gotArgs, tc.name, tc.args)
		}
	}
}

func TestCopyToClipboard(t *testing.T) {
	origWrite, origUnsupported := writeClipboard, clipboardUnsupported
	t.Cleanup(func() {
		writeClipboard, clipboardUnsupported = origWrite, origUnsupported
	})

	var copied string
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}
	clipboardUnsupported = func() bool { return false }
	if err := CopyToClipboard("https://example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if copied != "https://example.com" {
		t.Fatalf("unexpected clipboard content: %q", copied)
	}

	writeClipboard = func(string) error { return errors.New("xclip exited 1") }
	if err := CopyToClipboard("x"); err == nil {
		t.Fatal("expected write error")
	}

	clipboardUnsupported = func() bool { return true }
	if err := CopyToClipboard("x"); err == nil || !strings.Contains(err.Error(), "no clipboard") {
		t.Fatalf("expected unsupported error, got %v", err)
	}
}
