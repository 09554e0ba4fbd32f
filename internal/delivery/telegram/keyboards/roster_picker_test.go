package keyboards

import (
	"strings"
	"testing"
)

func TestBuildRosterKeyboard(t *testing.T) {
	_, markup := BuildRosterKeyboard([]string{"Kabiraj Lamichhane", "Jenish Kandel", "Goma Adhikari"})

	rows := markup.InlineKeyboard
	if len(rows) != 3 {
		t.Fatalf("want 2 employee rows + 1 all row, got %d", len(rows))
	}
	if len(rows[0]) != 2 || len(rows[1]) != 1 {
		t.Errorf("unexpected row sizes %d, %d", len(rows[0]), len(rows[1]))
	}
	goma := rows[1][0]
	if goma.Text != "Goma Adhikari" || goma.Unique != WeekPick || !strings.HasSuffix(goma.Data, "2") {
		t.Errorf("unexpected button %+v", goma)
	}
	if all := rows[2][0]; all.Unique != WeekPick || !strings.HasSuffix(all.Data, WeekPickAll) {
		t.Errorf("unexpected all button %+v", all)
	}
}
