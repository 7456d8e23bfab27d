package content

import (
	"testing"
	"time"
)

func TestDocument_Encode(t *testing.T) {
	doc := Document{
		Title:   "My Trip",
		Date:    "2025-01-02T10:00:00+01:00",
		LastMod: "2025-01-03T10:00:00+01:00",
		Tags:    []string{"travel", "photos"},
		NoteID:  "ab12cd",
		Body:    "Body text.\n\n",
	}
	want := `---
title: "My Trip"
date: 2025-01-02T10:00:00+01:00
lastmod: 2025-01-03T10:00:00+01:00
tags:
  - travel
  - photos
note_id: "ab12cd"
---

Body text.
`
	if got := string(doc.Encode()); got != want {
		t.Errorf("encoded = %q, want %q", got, want)
	}
}

func TestDocument_EncodeOmitsEmptyTags(t *testing.T) {
	doc := Document{Title: "T", Date: "2025-01-02", LastMod: "2025-01-02", NoteID: "x"}
	got := string(doc.Encode())
	if want := "---\ntitle: \"T\"\ndate: 2025-01-02\nlastmod: 2025-01-02\nnote_id: \"x\"\n---\n\n\n"; got != want {
		t.Errorf("encoded = %q, want %q", got, want)
	}
}

func TestDocument_EncodeDeterministic(t *testing.T) {
	doc := Document{Title: "T", Date: "d", LastMod: "l", NoteID: "x", Body: "b"}
	if string(doc.Encode()) != string(doc.Encode()) {
		t.Error("encoding not deterministic")
	}
}

func TestDecodeHeader_RoundTrip(t *testing.T) {
	doc := Document{
		Title:   "My \"quoted\" Trip",
		Date:    "2025-01-02T10:00:00+01:00",
		LastMod: "2025-01-03T10:00:00+01:00",
		Tags:    []string{"travel"},
		NoteID:  "ab12cd",
		Body:    "Body.",
	}
	h, err := decodeHeader(doc.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if h.Title != doc.Title {
		t.Errorf("title = %q, want %q", h.Title, doc.Title)
	}
	if h.Date != doc.Date || h.LastMod != doc.LastMod {
		t.Errorf("dates = %q / %q", h.Date, h.LastMod)
	}
	if len(h.Tags) != 1 || h.Tags[0] != "travel" {
		t.Errorf("tags = %v", h.Tags)
	}
	if h.NoteID != "ab12cd" {
		t.Errorf("note_id = %q", h.NoteID)
	}
}

func TestParseTime(t *testing.T) {
	loc := time.FixedZone("", 3600)
	ts := time.Date(2025, 1, 3, 10, 0, 0, 0, loc)

	got := parseTime("2025-01-03T10:00:00+01:00")
	if !got.Equal(ts) {
		t.Errorf("parseTime = %v, want %v", got, ts)
	}
	if got := parseTime("2025-01-03"); got.IsZero() {
		t.Error("date-only layout should parse")
	}
	if got := parseTime("not a date"); !got.IsZero() {
		t.Errorf("garbage should yield zero time, got %v", got)
	}
	if got := parseTime(""); !got.IsZero() {
		t.Errorf("empty should yield zero time, got %v", got)
	}
}

func TestFormatTime_RoundTrip(t *testing.T) {
	loc := time.FixedZone("", 2*3600)
	ts := time.Date(2025, 6, 1, 12, 30, 45, 0, loc)
	formatted := FormatTime(ts)
	if formatted != "2025-06-01T12:30:45+02:00" {
		t.Errorf("formatted = %q", formatted)
	}
	if !parseTime(formatted).Equal(ts) {
		t.Errorf("round trip lost %v", ts)
	}
}
