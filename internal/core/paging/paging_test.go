package paging

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name               string
		page, limit        int
		wantPage, wantLimit int
	}{
		{"defaults applied", 0, 0, 1, 20},
		{"negative page", -3, 10, 1, 10},
		{"limit capped", 2, 500, 2, 100},
		{"valid values kept", 3, 50, 3, 50},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := Normalize(c.page, c.limit, 20)
			if p.Page != c.wantPage || p.Limit != c.wantLimit {
				t.Fatalf("Normalize(%d, %d) = %+v, want page=%d limit=%d", c.page, c.limit, p, c.wantPage, c.wantLimit)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 3, Limit: 20}
	if got := p.Offset(); got != 40 {
		t.Errorf("Offset() = %d, want 40", got)
	}
}

func TestNewMeta(t *testing.T) {
	cases := []struct {
		name       string
		total      int
		limit      int
		wantPages  int
	}{
		{"exact division", 40, 20, 2},
		{"rounds up", 41, 20, 3},
		{"single partial page", 5, 20, 1},
		{"empty result", 0, 20, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			meta := NewMeta(c.total, Params{Page: 1, Limit: c.limit})
			if meta.TotalPages != c.wantPages {
				t.Fatalf("TotalPages = %d, want %d", meta.TotalPages, c.wantPages)
			}
			if meta.Total != c.total {
				t.Fatalf("Total = %d, want %d", meta.Total, c.total)
			}
		})
	}
}

func TestWindow(t *testing.T) {
	p := Params{Page: 2, Limit: 10}

	from, to := p.Window(25)
	if from != 10 || to != 20 {
		t.Errorf("Window(25) = [%d, %d), want [10, 20)", from, to)
	}

	// последняя неполная страница
	from, to = p.Window(15)
	if from != 10 || to != 15 {
		t.Errorf("Window(15) = [%d, %d), want [10, 15)", from, to)
	}

	// страница за пределами данных — пустой срез, не паника
	from, to = p.Window(5)
	if from != 5 || to != 5 {
		t.Errorf("Window(5) = [%d, %d), want [5, 5)", from, to)
	}
}
