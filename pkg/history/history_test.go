package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/verible/verible-cli/pkg/trustview"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history.sqlite"))
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func viewWithScore(name string, score int) *trustview.SellerTrustView {
	v := &trustview.SellerTrustView{Platform: "jiji"}
	v.SellerIdentity.Name = name
	v.TrustScore = score
	v.ConfidenceLevel = trustview.ConfidenceMedium
	v.MarketplaceVerification = trustview.VerificationUnverified
	v.TrustLabel = trustview.TrustLabel(score)
	v.StarRating = trustview.StarRating(0, score)
	return v
}

func TestRecordViewChangeSequence(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	url := "https://jiji.ng/shop/janes-gadgets"

	change, err := db.RecordView(ctx, url, viewWithScore("Jane Doe", 70))
	if err != nil {
		t.Fatalf("first record: %v", err)
	}
	if change == nil || change.ChangeType != ChangeFirstSeen || change.NewScore != 70 {
		t.Fatalf("expected first-seen change, got %+v", change)
	}

	change, err = db.RecordView(ctx, url, viewWithScore("Jane Doe", 85))
	if err != nil {
		t.Fatalf("second record: %v", err)
	}
	if change == nil || change.ChangeType != ChangeImproved || change.OldScore != 70 || change.NewScore != 85 {
		t.Fatalf("expected improved 70->85, got %+v", change)
	}

	change, err = db.RecordView(ctx, url, viewWithScore("Jane Doe", 85))
	if err != nil {
		t.Fatalf("third record: %v", err)
	}
	if change != nil {
		t.Fatalf("unchanged score should not log a change, got %+v", change)
	}

	change, err = db.RecordView(ctx, url, viewWithScore("Jane Doe", 60))
	if err != nil {
		t.Fatalf("fourth record: %v", err)
	}
	if change == nil || change.ChangeType != ChangeDeclined || change.OldScore != 85 || change.NewScore != 60 {
		t.Fatalf("expected declined 85->60, got %+v", change)
	}
}

func TestListLatestReturnsNewestPerSeller(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if _, err := db.RecordView(ctx, "https://jiji.ng/shop/a", viewWithScore("A", 50)); err != nil {
		t.Fatal(err)
	}
	if _, err := db.RecordView(ctx, "https://jiji.ng/shop/a", viewWithScore("A", 80)); err != nil {
		t.Fatal(err)
	}
	if _, err := db.RecordView(ctx, "https://jiji.ng/shop/b", viewWithScore("B", 30)); err != nil {
		t.Fatal(err)
	}

	sellers, err := db.ListLatest(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("ListLatest: %v", err)
	}
	if len(sellers) != 2 {
		t.Fatalf("expected 2 sellers, got %d", len(sellers))
	}
	if sellers[0].ProfileURL != "https://jiji.ng/shop/a" || sellers[0].PulseScore != 80 {
		t.Fatalf("expected newest snapshot for a, got %+v", sellers[0])
	}
	if sellers[1].ProfileURL != "https://jiji.ng/shop/b" || sellers[1].PulseScore != 30 {
		t.Fatalf("unexpected second seller %+v", sellers[1])
	}
}

func TestListLatestFilters(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	olx := viewWithScore("Cheap Phones", 40)
	olx.Platform = "olx"
	if _, err := db.RecordView(ctx, "https://olx.ng/shop/phones", olx); err != nil {
		t.Fatal(err)
	}
	if _, err := db.RecordView(ctx, "https://jiji.ng/shop/gadgets", viewWithScore("Gadget Hub", 75)); err != nil {
		t.Fatal(err)
	}

	sellers, err := db.ListLatest(ctx, ListOptions{Platform: "olx"})
	if err != nil {
		t.Fatal(err)
	}
	if len(sellers) != 1 || sellers[0].Platform != "olx" {
		t.Fatalf("platform filter failed: %+v", sellers)
	}

	sellers, err = db.ListLatest(ctx, ListOptions{SearchFilter: "Gadget"})
	if err != nil {
		t.Fatal(err)
	}
	if len(sellers) != 1 || sellers[0].Name != "Gadget Hub" {
		t.Fatalf("search filter failed: %+v", sellers)
	}
}

func TestListSnapshotsOldestFirst(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	url := "https://jiji.ng/shop/a"

	for _, score := range []int{20, 40, 60} {
		if _, err := db.RecordView(ctx, url, viewWithScore("A", score)); err != nil {
			t.Fatal(err)
		}
	}

	snaps, err := db.ListSnapshots(ctx, url)
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(snaps) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(snaps))
	}
	for i, want := range []int{20, 40, 60} {
		if snaps[i].PulseScore != want {
			t.Errorf("snapshot %d: score %d, want %d", i, snaps[i].PulseScore, want)
		}
	}
}

func TestListRecentChanges(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if _, err := db.RecordView(ctx, "https://jiji.ng/shop/a", viewWithScore("A", 50)); err != nil {
		t.Fatal(err)
	}
	if _, err := db.RecordView(ctx, "https://jiji.ng/shop/a", viewWithScore("A", 90)); err != nil {
		t.Fatal(err)
	}

	changes, err := db.ListRecentChanges(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentChanges: %v", err)
	}
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(changes))
	}
	// Newest first.
	if changes[0].ChangeType != ChangeImproved || changes[1].ChangeType != ChangeFirstSeen {
		t.Fatalf("unexpected order: %+v", changes)
	}
}

func TestGetStats(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if _, err := db.RecordView(ctx, "https://jiji.ng/shop/a", viewWithScore("A", 60)); err != nil {
		t.Fatal(err)
	}
	if _, err := db.RecordView(ctx, "https://jiji.ng/shop/b", viewWithScore("B", 80)); err != nil {
		t.Fatal(err)
	}

	stats, err := db.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("expected one platform, got %+v", stats)
	}
	if stats[0].Platform != "jiji" || stats[0].SellerCount != 2 || stats[0].AvgScore != 70 {
		t.Fatalf("unexpected stats %+v", stats[0])
	}
}

func TestOpenUncreatablePath(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing-dir", "history.sqlite")); err == nil {
		t.Fatal("expected an error when the database file cannot be created")
	}
}

func TestNormalizeProfileURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://JIJI.ng/shop/abc/", "https://jiji.ng/shop/abc"},
		{"https://jiji.ng/shop/abc#reviews", "https://jiji.ng/shop/abc"},
		{"  https://jiji.ng/shop/abc  ", "https://jiji.ng/shop/abc"},
		{"https://jiji.ng/", "https://jiji.ng/"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := NormalizeProfileURL(tc.in); got != tc.want {
			t.Errorf("NormalizeProfileURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
