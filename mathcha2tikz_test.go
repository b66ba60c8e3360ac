package mathcha2tikz

import (
	"errors"
	"strings"
	"testing"

	"github.com/1paulpo1/mathcha2tikz/detect"
)

const twoLines = `\begin{tikzpicture}[x=0.75pt,y=0.75pt,yscale=-1,xscale=1]

%Straight Lines [id:da01]
\draw    (100,50) -- (200,150) ;
%Straight Lines [id:da02]
\draw [color={rgb, 255:red, 255; green, 0; blue, 0 }, draw opacity=1]   (100,150) -- (200,50) ;
\draw [shift={(200,50)}, rotate = 135] [color={rgb, 255:red, 255; green, 0; blue, 0 }]  (10.93,-3.29) .. controls (6.95,-1.4) and (3.31,-0.3) .. (0,0) .. controls (3.31,0.3) and (6.95,1.4) .. (10.93,3.29) ;

\end{tikzpicture}`

func TestRunTwoLineScenario(t *testing.T) {
	out, warnings, err := Convert(twoLines).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	lines := strings.Split(out, "\n")
	if lines[0] != `\definecolor{Red}{rgb}{1.0000, 0.0000, 0.0000}` {
		t.Errorf("first line = %q, want Red definition", lines[0])
	}
	if !strings.Contains(out, `%Straight Lines [id:da01]`) {
		t.Errorf("missing first traceability comment:\n%s", out)
	}
	if !strings.Contains(out, `\draw (100,50) -- (200,150) ;`) {
		t.Errorf("missing plain line:\n%s", out)
	}
	if !strings.Contains(out, `\draw [->, color = Red] (100,150) -- (200,50) ;`) {
		t.Errorf("missing red arrowed line:\n%s", out)
	}

	// Source order is preserved.
	first := strings.Index(out, "[id:da01]")
	second := strings.Index(out, "[id:da02]")
	if first < 0 || second < 0 || second < first {
		t.Errorf("group order not preserved:\n%s", out)
	}
}

func TestRunStructuralErrors(t *testing.T) {
	if _, _, err := Convert("no drawing here").Run(); !errors.Is(err, detect.ErrNotTikz) {
		t.Errorf("err = %v, want ErrNotTikz", err)
	}
	if _, _, err := Convert(`\begin{tikzpicture}`+"\n"+`\end{tikzpicture}`).Run(); !errors.Is(err, detect.ErrNoShapes) {
		t.Errorf("err = %v, want ErrNoShapes", err)
	}
}

func TestRunPassthroughWarning(t *testing.T) {
	in := "%Flowchart: Decision [id:xx1]\n\\draw (0,0) -- (10,0) -- (5,8) -- cycle ;"
	out, warnings, err := Convert(in).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out, "(0,0) -- (10,0) -- (5,8) -- cycle ;") {
		t.Errorf("passthrough body lost:\n%s", out)
	}
	if len(warnings) != 1 || warnings[0].Code != "passthrough" {
		t.Fatalf("warnings = %v, want one passthrough", warnings)
	}
	if warnings[0].GroupID != "xx1" {
		t.Errorf("warning id = %q, want xx1", warnings[0].GroupID)
	}
}

func TestRunInvisibleGroupByteForByte(t *testing.T) {
	group := "%Straight Lines [id:da09]\n\\draw  [draw opacity=0]  (100,50) -- (200,150) ;"
	out, warnings, err := Convert(group).Run()
	if err != nil {
		t.Fatal(err)
	}
	if out != group {
		t.Errorf("passthrough not byte-identical:\n%q\n%q", out, group)
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want one", warnings)
	}
}

func TestConverterChainImmutability(t *testing.T) {
	base := Convert(twoLines)
	derived := base.PlaceNodes(true).NodeSnapDistance(50)
	if base.options.placeNodes {
		t.Error("chain method mutated the base converter")
	}
	if !derived.options.placeNodes || derived.options.nodeSnapDistance != 50 {
		t.Errorf("derived options = %+v", derived.options)
	}
}

func TestConverterFailFast(t *testing.T) {
	_, _, err := Convert(twoLines).NodeSnapDistance(-1).Run()
	if err == nil || !strings.Contains(err.Error(), "snap distance") {
		t.Errorf("err = %v, want snap distance validation failure", err)
	}
}

func TestRunPlacesNodes(t *testing.T) {
	in := "%Straight Lines [id:da01]\n" +
		"\\draw    (100,50) -- (200,150) ;\n" +
		"%Text Node [id:tn01]\n" +
		"\\draw (205,152) node [anchor=north west] {$A$};"

	out, warnings, err := Convert(in).PlaceNodes(true).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v", warnings)
	}
	if !strings.Contains(out, "(100,50) -- (200,150) node {$A$} ;") {
		t.Errorf("node not attached:\n%s", out)
	}
	if strings.Contains(out, "anchor=north west") {
		t.Errorf("original node statement should be consumed:\n%s", out)
	}
}

func TestRunUnplacedNodePassesThrough(t *testing.T) {
	in := "%Straight Lines [id:da01]\n" +
		"\\draw    (100,50) -- (200,150) ;\n" +
		"%Text Node [id:tn02]\n" +
		"\\draw (500,500) node [anchor=north west] {$B$};"

	out, warnings, err := Convert(in).PlaceNodes(true).Run()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `\draw (500,500) node [anchor=north west] {$B$};`) {
		t.Errorf("unplaced node lost:\n%s", out)
	}
	if len(warnings) != 1 || warnings[0].Code != "unplaced-node" {
		t.Errorf("warnings = %v, want unplaced-node", warnings)
	}
}

func TestRunNodesOffByDefault(t *testing.T) {
	in := "%Text Node [id:tn03]\n" +
		"\\draw (10,10) node [anchor=north west] {$C$};"
	out, _, err := Convert(in).Run()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "%Text Node [id:tn03]") {
		t.Errorf("node group must pass through with its annotation:\n%s", out)
	}
}

func TestMustRun(t *testing.T) {
	out := MustRun(Convert(twoLines).Run())
	if out == "" {
		t.Error("MustRun returned empty output")
	}

	defer func() {
		if recover() == nil {
			t.Error("MustRun must panic on structural error")
		}
	}()
	MustRun(Convert("nope").Run())
}
