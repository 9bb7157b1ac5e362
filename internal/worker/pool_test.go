package worker

import (
	"strconv"
	"testing"

	"github.com/ppiankov/exorank/internal/model"
)

func numberedRows(n int) []model.CandidateRow {
	rows := make([]model.CandidateRow, n)
	for i := range rows {
		rows[i] = model.CandidateRow{Name: "planet-" + strconv.Itoa(i), Priority: float64(i)}
	}
	return rows
}

func double(r model.CandidateRow) model.CandidateRow {
	r.Priority *= 2
	return r
}

func TestScoreRows_Sequential(t *testing.T) {
	out := ScoreRows(numberedRows(5), 0, double)
	for i, r := range out {
		if r.Priority != float64(i)*2 {
			t.Errorf("row %d priority = %v, want %v", i, r.Priority, float64(i)*2)
		}
	}
}

func TestScoreRows_ConcurrentPreservesOrder(t *testing.T) {
	rows := numberedRows(200)
	out := ScoreRows(rows, 8, double)
	if len(out) != len(rows) {
		t.Fatalf("got %d rows, want %d", len(out), len(rows))
	}
	for i, r := range out {
		if r.Name != rows[i].Name {
			t.Fatalf("row %d is %q, want %q; order not preserved", i, r.Name, rows[i].Name)
		}
		if r.Priority != float64(i)*2 {
			t.Errorf("row %d priority = %v, want %v", i, r.Priority, float64(i)*2)
		}
	}
}

func TestScoreRows_MoreWorkersThanRows(t *testing.T) {
	out := ScoreRows(numberedRows(3), 64, double)
	if len(out) != 3 {
		t.Fatalf("got %d rows, want 3", len(out))
	}
}

func TestScoreRows_Empty(t *testing.T) {
	if out := ScoreRows(nil, 4, double); len(out) != 0 {
		t.Errorf("got %d rows for empty input", len(out))
	}
}
