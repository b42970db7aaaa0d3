package engine

import "testing"

func rec(id string, score float64, monthly float64, planPrice float64) Recommendation {
	return Recommendation{
		Plan:    Plan{ID: id, Price: &planPrice},
		Score:   score,
		Savings: Savings{Monthly: monthly, Annual: monthly * 12},
	}
}

func TestRankDescendingByScore(t *testing.T) {
	e := New(DefaultWeights())
	recs := []Recommendation{
		rec("low", 40, 0, 120),
		rec("high", 90, 0, 100),
		rec("mid", 70, 0, 110),
	}
	e.rank(recs)
	if recs[0].Plan.ID != "high" || recs[1].Plan.ID != "mid" || recs[2].Plan.ID != "low" {
		t.Fatalf("unexpected order: %s, %s, %s", recs[0].Plan.ID, recs[1].Plan.ID, recs[2].Plan.ID)
	}
}

func TestRankTieBrokenBySavingsThenPrice(t *testing.T) {
	e := New(DefaultWeights())

	// Scores within the 1-point margin: higher savings wins.
	recs := []Recommendation{
		rec("small-saving", 80.5, 10, 100),
		rec("big-saving", 80, 50, 100),
	}
	e.rank(recs)
	if recs[0].Plan.ID != "big-saving" {
		t.Fatalf("expected savings to break the tie, got %s first", recs[0].Plan.ID)
	}

	// Equal savings: lower price wins.
	recs = []Recommendation{
		rec("pricier", 80, 20, 120),
		rec("cheaper", 80.4, 20, 95),
	}
	e.rank(recs)
	if recs[0].Plan.ID != "cheaper" {
		t.Fatalf("expected lower price to break the tie, got %s first", recs[0].Plan.ID)
	}

	// Fully identical: stable sort keeps input order.
	recs = []Recommendation{
		rec("first", 80, 20, 100),
		rec("second", 80, 20, 100),
	}
	e.rank(recs)
	if recs[0].Plan.ID != "first" {
		t.Fatalf("expected stable order for identical entries, got %s first", recs[0].Plan.ID)
	}
}

func TestFilterSplitsOnRequestPlans(t *testing.T) {
	rankable, onRequest := Filter(fixturePlans(), CategoryElectricity)
	if len(rankable) != 2 {
		t.Fatalf("expected 2 rankable plans, got %d", len(rankable))
	}
	if len(onRequest) != 1 || onRequest[0].ID != "el-3" {
		t.Fatalf("expected el-3 flagged on-request, got %+v", onRequest)
	}

	rankable, onRequest = Filter(fixturePlans(), CategoryTV)
	if len(rankable) != 0 || len(onRequest) != 0 {
		t.Fatalf("expected empty result for category without plans")
	}
}

func TestMarketStats(t *testing.T) {
	rankable, _ := Filter(fixturePlans(), CategoryElectricity)
	m := Market(CategoryElectricity, rankable)
	if m.PlanCount != 2 {
		t.Fatalf("expected 2 plans counted, got %d", m.PlanCount)
	}
	if m.AvgPrice != 100 || m.MinPrice != 80 || m.MaxPrice != 120 {
		t.Fatalf("unexpected stats: avg=%v min=%v max=%v", m.AvgPrice, m.MinPrice, m.MaxPrice)
	}
	if m.Note != "" {
		t.Fatalf("expected no note for a populated set, got %q", m.Note)
	}

	empty := Market(CategoryTV, nil)
	if empty.AvgPrice != 0 || empty.Note != "no plans available" {
		t.Fatalf("expected zeroed no-data stats, got %+v", empty)
	}
}
