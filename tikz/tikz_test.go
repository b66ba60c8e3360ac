package tikz

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/1paulpo1/mathcha2tikz/geometry"
)

func TestStatements(t *testing.T) {
	block := `%Straight Lines [id:da123]
\draw    (100,50) -- (200,50) ;
% inline note
\draw [shift={(200,50)}, rotate = 0] [fill={rgb, 255:red, 0; green, 0; blue, 0 }  ][line width=0.08]  [draw opacity=0] (10.93,-3.29) .. controls (6.95,-1.4) and (3.31,-0.3) .. (0,0) ;
plain text ends nothing here
`
	stmts := Statements(block)
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2: %#v", len(stmts), stmts)
	}
	if stmts[0] != `\draw    (100,50) -- (200,50) ;` {
		t.Errorf("unexpected first statement: %q", stmts[0])
	}
}

func TestStatementsFoldedLine(t *testing.T) {
	stmts := Statements(`\draw (0,0) -- (1,1) ; \draw (2,2) -- (3,3) ;`)
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
}

func TestPoints(t *testing.T) {
	tests := []struct {
		name string
		stmt string
		want []geometry.Point
	}{
		{
			name: "two endpoints",
			stmt: `\draw    (100,50.5) -- (-200,50) ;`,
			want: []geometry.Point{{X: 100, Y: 50.5}, {X: -200, Y: 50}},
		},
		{
			name: "bezier controls",
			stmt: `\draw (0,0) .. controls (10,0) and (20,10) .. (30,10) ;`,
			want: []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 10}, {X: 30, Y: 10}},
		},
		{
			name: "style block coordinates are masked",
			stmt: `\draw [shift={(200,50)}, rotate = 45] (10.93,-3.29) .. controls (6.95,-1.4) and (3.31,-0.3) .. (0,0) ;`,
			want: []geometry.Point{{X: 10.93, Y: -3.29}, {X: 6.95, Y: -1.4}, {X: 3.31, Y: -0.3}, {X: 0, Y: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Points(tt.stmt)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Points mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTransform(t *testing.T) {
	shift, rot, ok := Transform(`\draw [shift={(167.25,121.9)}, rotate = 196.66] [fill=black] (10.93,-3.29) -- (0,0) ;`)
	if !ok {
		t.Fatal("expected transform")
	}
	if shift.Distance(geometry.Point{X: 167.25, Y: 121.9}) > 1e-9 {
		t.Errorf("shift = %v", shift)
	}
	if rot != 196.66 {
		t.Errorf("rotate = %v, want 196.66", rot)
	}

	if _, _, ok := Transform(`\draw (0,0) -- (1,1) ;`); ok {
		t.Error("plain statement must not report a transform")
	}
}

func TestPredicates(t *testing.T) {
	bezier := `\draw (0,0) .. controls (1,0) and (2,0) .. (3,0) -- cycle ;`
	if !HasBezierControls(bezier) {
		t.Error("HasBezierControls = false for bezier statement")
	}
	if !IsClosed(bezier) {
		t.Error("IsClosed = false for cycle statement")
	}
	if HasBezierControls(`\draw (0,0) -- (1,1) ;`) {
		t.Error("HasBezierControls = true for straight statement")
	}

	invisible := `\draw [color={rgb, 255:red, 0; green, 0; blue, 0 }, draw opacity=0 ] (0,0) -- (1,1) ;`
	if !HasDrawOpacityZero(invisible) {
		t.Error("HasDrawOpacityZero = false for invisible statement")
	}
	visible := `\draw [draw opacity=0.35 ] (0,0) -- (1,1) ;`
	if HasDrawOpacityZero(visible) {
		t.Error("HasDrawOpacityZero = true for opacity 0.35")
	}
}
