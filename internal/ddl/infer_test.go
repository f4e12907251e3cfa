package ddl

import (
	"testing"
	"time"
)

func TestInferTableDef(t *testing.T) {
	t.Parallel()

	cols := []string{"year", "latitude", "claimed", "city", "resolution", "stamp"}
	sample := [][]string{
		{"1970", "18.45", "1", "santo domingo", "", "1970-01-02 00:00:00"},
		{"1971", "-3.1", "0", "cairo", "", "1971-05-01 12:00:00"},
		{"1972", "40", "1", "", "1972-06-01", "1972-06-01 08:30:00"},
	}

	def, err := InferTableDef("dbo.FactTerrorEvents", cols, sample)
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	if def.FQN != "dbo.FactTerrorEvents" {
		t.Fatalf("FQN = %q", def.FQN)
	}

	want := map[string]struct {
		kind     string
		nullable bool
	}{
		"year":       {KindInteger, false},
		"latitude":   {KindReal, false},
		"claimed":    {KindBoolean, false},
		"city":       {KindText, true},
		"resolution": {KindDate, true},
		"stamp":      {KindTimestamp, false},
	}
	for _, c := range def.Columns {
		w, ok := want[c.Name]
		if !ok {
			t.Errorf("unexpected column %q", c.Name)
			continue
		}
		if c.Kind != w.kind || c.Nullable != w.nullable {
			t.Errorf("%s: kind=%s nullable=%t, want kind=%s nullable=%t",
				c.Name, c.Kind, c.Nullable, w.kind, w.nullable)
		}
	}
}

func TestInferTableDef_Errors(t *testing.T) {
	t.Parallel()

	if _, err := InferTableDef("", []string{"a"}, nil); err == nil {
		t.Error("empty FQN accepted")
	}
	if _, err := InferTableDef("t", nil, nil); err == nil {
		t.Error("empty column list accepted")
	}
	if _, err := InferTableDef("t", []string{"a", " "}, nil); err == nil {
		t.Error("blank column name accepted")
	}
}

func TestInferTableDef_EmptyColumnStaysText(t *testing.T) {
	t.Parallel()

	def, err := InferTableDef("t", []string{"empty"}, [][]string{{""}, {""}})
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	c := def.Columns[0]
	if c.Kind != KindText || !c.Nullable {
		t.Fatalf("all-empty column: kind=%s nullable=%t, want text/nullable", c.Kind, c.Nullable)
	}
}

func TestInferTableDef_ShortRowsMarkNullable(t *testing.T) {
	t.Parallel()

	def, err := InferTableDef("t", []string{"a", "b"}, [][]string{{"1", "2"}, {"3"}})
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	if !def.Columns[1].Nullable {
		t.Fatal("column past a short row should be nullable")
	}
	if def.Columns[1].Kind != KindInteger {
		t.Fatalf("b kind = %s, want integer", def.Columns[1].Kind)
	}
}

func TestCoerceValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind    string
		raw     string
		want    any
		wantErr bool
	}{
		{KindInteger, "42", int64(42), false},
		{KindInteger, "", nil, false},
		{KindInteger, "4.5", nil, true},
		{KindReal, "-3.25", -3.25, false},
		{KindReal, "forty", nil, true},
		{KindBoolean, "1", true, false},
		{KindBoolean, "false", false, false},
		{KindBoolean, "maybe", nil, true},
		{KindText, " hi ", "hi", false},
		{KindText, "", nil, false},
	}
	for _, tc := range cases {
		got, err := CoerceValue(tc.kind, tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("CoerceValue(%s, %q): want error", tc.kind, tc.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("CoerceValue(%s, %q): %v", tc.kind, tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("CoerceValue(%s, %q) = %v (%T), want %v", tc.kind, tc.raw, got, got, tc.want)
		}
	}

	got, err := CoerceValue(KindDate, "1972-06-01")
	if err != nil {
		t.Fatalf("date: %v", err)
	}
	if ts, ok := got.(time.Time); !ok || ts.Year() != 1972 {
		t.Fatalf("date = %v", got)
	}
}
