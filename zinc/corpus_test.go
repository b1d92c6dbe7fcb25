package zinc

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

type corpusCase struct {
	Name    string `yaml:"name"`
	File    string `yaml:"file"`
	Fast    bool   `yaml:"fast"`
	Kind    string `yaml:"kind"`
	Columns int    `yaml:"columns"`
	Rows    int    `yaml:"rows"`
}

func loadCorpus(t *testing.T) []corpusCase {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "grids", "manifest.yaml"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var manifest struct {
		Cases []corpusCase `yaml:"cases"`
	}
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	return manifest.Cases
}

func TestCorpus(t *testing.T) {
	for _, c := range loadCorpus(t) {
		t.Run(c.Name, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join("testdata", "grids", c.File))
			if err != nil {
				t.Fatal(err)
			}
			text := string(data)

			g, err := ParseFast(text)
			if !c.Fast {
				var ze *Error
				if !errors.As(err, &ze) {
					t.Fatalf("ParseFast error = %v, want *Error", err)
				}
				if ze.Kind.String() != c.Kind {
					t.Errorf("kind = %s, want %s", ze.Kind, c.Kind)
				}
				wantEligible := c.Kind != "rejected"
				if got := IsFastPathEligible(text); got != wantEligible {
					t.Errorf("IsFastPathEligible = %v, want %v", got, wantEligible)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseFast error: %v", err)
			}
			if len(g.Columns) != c.Columns || len(g.Rows) != c.Rows {
				t.Errorf("got %d columns, %d rows, want %d, %d", len(g.Columns), len(g.Rows), c.Columns, c.Rows)
			}

			// The dispatcher must return the same grid without touching the fallback.
			called := false
			fb := FallbackFunc(func(string, bool) (*Grid, error) {
				called = true
				return nil, errors.New("unexpected fallback")
			})
			got, err := ParseGrid(text, fb)
			if err != nil || called {
				t.Fatalf("ParseGrid: err = %v, fallback called = %v", err, called)
			}
			if !Equal(got, g) {
				t.Error("ParseGrid and ParseFast disagree")
			}
		})
	}
}

func TestCorpusHistoryValues(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "grids", "history.zinc"))
	if err != nil {
		t.Fatal(err)
	}
	g, err := ParseFast(string(data))
	if err != nil {
		t.Fatalf("ParseFast error: %v", err)
	}

	first, ok := g.Rows[0].At(0).(DateTime)
	if !ok {
		t.Fatalf("ts = %T, want DateTime", g.Rows[0].At(0))
	}
	if first.Zone != "New_York" || first.Time.Location().String() != "America/New_York" {
		t.Errorf("ts zone = %q in %v", first.Zone, first.Time.Location())
	}
	if first.Time.UTC().Hour() != 5 {
		t.Errorf("ts UTC hour = %d, want 5", first.Time.UTC().Hour())
	}
	if !IsNull(g.Rows[3].At(1)) {
		t.Errorf("row 3 val = %v, want null", g.Rows[3].At(1))
	}
	if v, _ := g.Meta.Get("id"); v != (Ref{ID: "p:demo:r:p1"}) {
		t.Errorf("meta id = %v", v)
	}
}
