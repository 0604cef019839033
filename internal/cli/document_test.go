package cli

import (
	"testing"

	"github.com/matzehuels/logictree/pkg/errors"
)

const sampleDoc = `
title = "Pipeline"
title_position = "left"

[canvas]
width = 600
height = 400
background = "#101010"
xlim = [0, 100]
ylim = [0, 100]

[font]
family = "serif"
size = 12
color = "white"

[[box]]
name = "ingest"
label = "Ingest"
x = 50
y = 80
face = "navy"
edge = "white"

[[box]]
name = "check"
label = "Sanity check"
x = 50
y = 55

[[box]]
name = "ok"
label = "Accept"
x = 25
y = 20

[[box]]
name = "bad"
label = "Reject"
x = 75
y = 20

[[connection]]
from = "ingest"
to = "check"
split = true

[[bisplit]]
from = "check"
to = ["ok", "bad"]
label_left = "pass"
label_right = "fail"
`

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	if doc.Title != "Pipeline" || doc.TitlePosition != "left" {
		t.Errorf("title = %q at %q, want Pipeline at left", doc.Title, doc.TitlePosition)
	}
	if doc.Canvas.Width != 600 || doc.Canvas.Height != 400 {
		t.Errorf("canvas = %gx%g, want 600x400", doc.Canvas.Width, doc.Canvas.Height)
	}
	if len(doc.Boxes) != 4 || len(doc.Connections) != 1 || len(doc.BiSplits) != 1 {
		t.Fatalf("got %d boxes, %d connections, %d bisplits; want 4, 1, 1",
			len(doc.Boxes), len(doc.Connections), len(doc.BiSplits))
	}
	if doc.Boxes[0].Face != "navy" {
		t.Errorf("first box face = %q, want navy", doc.Boxes[0].Face)
	}
}

func TestParseDocumentInvalidTOML(t *testing.T) {
	if _, err := ParseDocument([]byte("title = [unclosed")); err == nil {
		t.Fatal("malformed TOML should fail to parse")
	}
}

func TestDocumentBuild(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	tr, err := doc.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if tr.Boxes() != 4 {
		t.Errorf("Boxes() = %d, want 4", tr.Boxes())
	}
	// One plain connection plus the two bisplit branches.
	if got := len(tr.Edges()); got != 3 {
		t.Errorf("Edges() = %d, want 3", got)
	}
	if b, ok := tr.Box("ingest"); !ok || b.FaceColor != "navy" {
		t.Errorf("ingest box missing or restyled: %v, %v", b, ok)
	}
	if tr.Title() != "Pipeline" {
		t.Errorf("Title() = %q, want Pipeline", tr.Title())
	}
}

func TestDocumentBuildUnknownBox(t *testing.T) {
	doc := &Document{
		Boxes:       []BoxSpec{{Name: "a", Label: "a", X: 10, Y: 10}},
		Connections: []ConnSpec{{From: "a", To: "ghost"}},
	}
	_, err := doc.Build()
	if errors.GetCode(err) != errors.ErrCodeBoxNotFound {
		t.Fatalf("unknown target error = %v, want code %s", err, errors.ErrCodeBoxNotFound)
	}
}

func TestDocumentBuildBadRoute(t *testing.T) {
	doc := &Document{
		Boxes: []BoxSpec{
			{Name: "a", Label: "a", X: 10, Y: 10},
			{Name: "b", Label: "b", X: 60, Y: 60},
		},
		Connections: []ConnSpec{{From: "a", To: "b", Route: "diagonal"}},
	}
	_, err := doc.Build()
	if errors.GetCode(err) != errors.ErrCodeInvalidRoute {
		t.Fatalf("bad route error = %v, want code %s", err, errors.ErrCodeInvalidRoute)
	}
}

func TestDocumentBuildBiSplitArity(t *testing.T) {
	doc := &Document{
		Boxes:    []BoxSpec{{Name: "a", Label: "a", X: 10, Y: 80}},
		BiSplits: []BiSplitSpec{{From: "a", To: []string{"only"}}},
	}
	_, err := doc.Build()
	if errors.GetCode(err) != errors.ErrCodeInvalidBox {
		t.Fatalf("arity error = %v, want code %s", err, errors.ErrCodeInvalidBox)
	}
}

func TestLoadDocumentMissingFile(t *testing.T) {
	_, err := LoadDocument("does-not-exist.toml")
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Fatalf("missing file error = %v, want code %s", err, errors.ErrCodeFileNotFound)
	}
}
