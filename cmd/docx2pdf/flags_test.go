package main

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestParseConvertFlags - Flag parsing
// ---------------------------------------------------------------------------

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	var usage bytes.Buffer
	f, positional, err := parseConvertFlags([]string{
		"report.docx",
		"-o", "out.pdf",
		"-c", "work",
		"--style", "default",
		"--css", "body { color: red; }",
		"--style-map", "p[style-name='Quote'] => blockquote:fresh",
		"--style-map", "r[style-name='Code'] => code",
		"--no-default-style-map",
		"-p", "letter",
		"--orientation", "landscape",
		"--margin", "2.5",
		"--backend", "chromedp",
		"-t", "1m",
		"--idle-window", "250ms",
		"--html",
		"-v",
	}, &usage)
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}

	if !reflect.DeepEqual(positional, []string{"report.docx"}) {
		t.Errorf("positional = %v, want [report.docx]", positional)
	}
	if f.output != "out.pdf" || f.config != "work" || f.style != "default" {
		t.Errorf("output/config/style = %q/%q/%q", f.output, f.config, f.style)
	}
	if len(f.styleMap) != 2 || f.styleMap[1] != "r[style-name='Code'] => code" {
		t.Errorf("styleMap = %q", f.styleMap)
	}
	if !f.noDefaultStyleMap || !f.html || !f.verbose || f.quiet || f.htmlOnly {
		t.Errorf("bool flags = %+v", f)
	}
	if f.page != (pageFlags{size: "letter", orientation: "landscape", margin: 2.5}) {
		t.Errorf("page = %+v", f.page)
	}
	if f.renderer != (rendererFlags{backend: "chromedp", timeout: "1m", idleWindow: "250ms"}) {
		t.Errorf("renderer = %+v", f.renderer)
	}
	if !f.changed("margin") || f.changed("log-level") {
		t.Error("changed() does not track flags set on the command line")
	}
}

func TestParseConvertFlags_StyleMapKeepsCommas(t *testing.T) {
	t.Parallel()

	f, _, err := parseConvertFlags([]string{"--style-map", "p[style-name='A, B'] => h2"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}
	if len(f.styleMap) != 1 {
		t.Errorf("styleMap = %q, want one rule", f.styleMap)
	}
}

func TestParseConvertFlags_Errors(t *testing.T) {
	t.Parallel()

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		var usage bytes.Buffer
		_, _, err := parseConvertFlags([]string{"-h"}, &usage)
		if !errors.Is(err, flag.ErrHelp) {
			t.Errorf("error = %v, want flag.ErrHelp", err)
		}
		if usage.Len() == 0 {
			t.Error("usage not printed")
		}
	})

	t.Run("bad margin", func(t *testing.T) {
		t.Parallel()

		if _, _, err := parseConvertFlags([]string{"--margin", "wide"}, &bytes.Buffer{}); err == nil {
			t.Error("expected error for non-numeric margin")
		}
	})
}
