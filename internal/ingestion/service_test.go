package ingestion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rpattn/roaslytics/internal/domain"
	"github.com/rpattn/roaslytics/internal/repository"

	"github.com/shopspring/decimal"
)

// memDB is a natural-key keyed in-memory dataset shared by the stub
// repositories below.
type memDB struct {
	influencers []domain.Influencer
	posts       []domain.Post
	tracking    []domain.TrackingData
	payouts     []domain.Payout

	insertErr error
}

func (db *memDB) clone() memDB {
	return memDB{
		influencers: append([]domain.Influencer(nil), db.influencers...),
		posts:       append([]domain.Post(nil), db.posts...),
		tracking:    append([]domain.TrackingData(nil), db.tracking...),
		payouts:     append([]domain.Payout(nil), db.payouts...),
		insertErr:   db.insertErr,
	}
}

type memInfluencers struct{ db *memDB }

var _ repository.InfluencerRepository = (*memInfluencers)(nil)

func (r *memInfluencers) CreateIfAbsent(_ context.Context, inf domain.Influencer) (bool, error) {
	if r.db.insertErr != nil {
		return false, r.db.insertErr
	}
	for _, existing := range r.db.influencers {
		if existing.Name == inf.Name {
			return false, nil
		}
	}
	r.db.influencers = append(r.db.influencers, inf)
	return true, nil
}

func (r *memInfluencers) GetByName(_ context.Context, name string) (domain.Influencer, error) {
	for _, inf := range r.db.influencers {
		if inf.Name == name {
			return inf, nil
		}
	}
	return domain.Influencer{}, repository.ErrNotFound
}

type memPosts struct{ db *memDB }

var _ repository.PostRepository = (*memPosts)(nil)

func (r *memPosts) CreateIfAbsent(_ context.Context, post domain.Post) (bool, error) {
	if r.db.insertErr != nil {
		return false, r.db.insertErr
	}
	for _, existing := range r.db.posts {
		if existing.InfluencerID == post.InfluencerID && existing.Date.Equal(post.Date) && existing.Platform == post.Platform {
			return false, nil
		}
	}
	r.db.posts = append(r.db.posts, post)
	return true, nil
}

type memTracking struct{ db *memDB }

var _ repository.TrackingRepository = (*memTracking)(nil)

func (r *memTracking) CreateIfAbsent(_ context.Context, td domain.TrackingData) (bool, error) {
	if r.db.insertErr != nil {
		return false, r.db.insertErr
	}
	for _, existing := range r.db.tracking {
		if existing.UserID == td.UserID && existing.Date.Equal(td.Date) && existing.Product == td.Product && existing.InfluencerID == td.InfluencerID {
			return false, nil
		}
	}
	r.db.tracking = append(r.db.tracking, td)
	return true, nil
}

func (r *memTracking) Totals(context.Context, domain.AnalyticsFilter) (repository.TrackingTotals, error) {
	return repository.TrackingTotals{}, nil
}

func (r *memTracking) GroupTotals(context.Context, domain.AnalyticsFilter, repository.TrackingGroupKey) ([]repository.TrackingGroupRow, error) {
	return nil, nil
}

type memPayouts struct{ db *memDB }

var _ repository.PayoutRepository = (*memPayouts)(nil)

func (r *memPayouts) CreateIfAbsent(_ context.Context, p domain.Payout) (bool, error) {
	if r.db.insertErr != nil {
		return false, r.db.insertErr
	}
	for _, existing := range r.db.payouts {
		if existing.InfluencerID == p.InfluencerID && existing.PayoutDate.Equal(p.PayoutDate) && existing.Basis == p.Basis {
			return false, nil
		}
	}
	r.db.payouts = append(r.db.payouts, p)
	return true, nil
}

func (r *memPayouts) Totals(context.Context, domain.AnalyticsFilter) (repository.PayoutTotals, error) {
	return repository.PayoutTotals{}, nil
}

func (r *memPayouts) GroupTotals(context.Context, domain.AnalyticsFilter, repository.PayoutGroupKey) ([]repository.PayoutGroupRow, error) {
	return nil, nil
}

func (r *memPayouts) TopByPayout(context.Context, int) ([]repository.PayoutGroupRow, error) {
	return nil, nil
}

type memMaintenance struct{ db *memDB }

var _ repository.MaintenanceRepository = (*memMaintenance)(nil)

func (r *memMaintenance) ClearAll(context.Context) error {
	r.db.payouts = nil
	r.db.tracking = nil
	r.db.posts = nil
	r.db.influencers = nil
	return nil
}

// memRunner rolls the shared dataset back when the unit of work fails,
// mirroring the transactional runner.
type memRunner struct{ db *memDB }

var _ repository.TxRunner = (*memRunner)(nil)

func (r *memRunner) InTx(_ context.Context, fn func(repository.Store) error) error {
	snapshot := r.db.clone()
	store := repository.Store{
		Influencers: &memInfluencers{db: r.db},
		Posts:       &memPosts{db: r.db},
		Tracking:    &memTracking{db: r.db},
		Payouts:     &memPayouts{db: r.db},
		Maintenance: &memMaintenance{db: r.db},
	}
	if err := fn(store); err != nil {
		*r.db = snapshot
		return err
	}
	return nil
}

func newTestService() (*Service, *memDB) {
	db := &memDB{}
	return NewService(&memRunner{db: db}), db
}

func seedInfluencer(db *memDB, name string) domain.Influencer {
	inf := domain.NewInfluencer(name, "fitness", "female", 100000, "instagram")
	db.influencers = append(db.influencers, inf)
	return inf
}

func ingestCSV(t *testing.T, svc *Service, kind EntityKind, csv string) Report {
	t.Helper()
	report, err := svc.Ingest(context.Background(), Request{
		EntityKind: kind,
		FileName:   "upload.csv",
		Data:       strings.NewReader(csv),
	})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	return report
}

func TestIngestInfluencersCreatesAndDefaults(t *testing.T) {
	svc, db := newTestService()

	report := ingestCSV(t, svc, EntityInfluencers,
		"name,follower_count\nMaya Patel,120000\n")

	if report.TotalRecords != 1 || report.CreatedCount != 1 || report.ExistingCount != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(db.influencers) != 1 {
		t.Fatalf("expected 1 stored influencer, got %d", len(db.influencers))
	}
	inf := db.influencers[0]
	if inf.Gender != "other" || inf.Platform != "instagram" || inf.Category != "" {
		t.Errorf("expected defaults applied, got %+v", inf)
	}
	if inf.FollowerCount != 120000 {
		t.Errorf("expected follower count 120000, got %d", inf.FollowerCount)
	}
}

func TestIngestInfluencersIdempotent(t *testing.T) {
	svc, db := newTestService()

	csv := "name,platform\nMaya Patel,instagram\nMaya Patel,youtube\n"
	report := ingestCSV(t, svc, EntityInfluencers, csv)

	if report.CreatedCount != 1 || report.ExistingCount != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(db.influencers) != 1 {
		t.Fatalf("name is the natural key, expected 1 row, got %d", len(db.influencers))
	}

	// Second upload of the same file creates nothing.
	report = ingestCSV(t, svc, EntityInfluencers, csv)
	if report.CreatedCount != 0 || report.ExistingCount != 2 {
		t.Fatalf("unexpected second report: %+v", report)
	}
}

func TestIngestPostsRejectsUnknownInfluencer(t *testing.T) {
	svc, db := newTestService()
	seedInfluencer(db, "Maya Patel")

	report := ingestCSV(t, svc, EntityPosts,
		"influencer_name,date,platform\nMaya Patel,2024-03-01,instagram\nGhost,2024-03-01,instagram\n")

	if report.CreatedCount != 1 || report.ExistingCount != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", report.Errors)
	}
	if want := `row 2: influencer "Ghost" not found`; report.Errors[0] != want {
		t.Errorf("expected %q, got %q", want, report.Errors[0])
	}
	if len(db.posts) != 1 {
		t.Errorf("expected 1 stored post, got %d", len(db.posts))
	}
}

func TestIngestTrackingRowIsolation(t *testing.T) {
	svc, db := newTestService()
	seedInfluencer(db, "Maya Patel")

	var rows []string
	rows = append(rows, "influencer_name,user_id,product,date,orders,revenue")
	for i := 1; i <= 10; i++ {
		date := "2024-03-10"
		if i == 5 {
			date = "not-a-date"
		}
		rows = append(rows, fmt.Sprintf("Maya Patel,u%d,widget,%s,2,10.00", i, date))
	}

	report := ingestCSV(t, svc, EntityTracking, strings.Join(rows, "\n")+"\n")

	if report.TotalRecords != 10 || report.CreatedCount != 9 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.Errors) != 1 || !strings.HasPrefix(report.Errors[0], "row 5: ") {
		t.Fatalf("expected a single row 5 error, got %v", report.Errors)
	}
	if len(db.tracking) != 9 {
		t.Errorf("expected 9 stored rows, got %d", len(db.tracking))
	}
}

func TestIngestPayoutsNaturalKey(t *testing.T) {
	svc, db := newTestService()
	seedInfluencer(db, "Maya Patel")

	report := ingestCSV(t, svc, EntityPayouts,
		"influencer_name,payout_date,basis,rate,orders,total_payout\n"+
			"Maya Patel,2024-03-31,post,500.00,10,500.00\n"+
			"Maya Patel,2024-03-31,post,999.00,99,999.00\n"+
			"Maya Patel,2024-03-31,order,5.00,10,50.00\n")

	if report.CreatedCount != 2 || report.ExistingCount != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(db.payouts) != 2 {
		t.Fatalf("expected 2 stored payouts, got %d", len(db.payouts))
	}
	// The duplicate key kept the first row's values.
	if !db.payouts[0].Rate.Equal(decimal.NewFromInt(500)) || db.payouts[0].Orders != 10 {
		t.Errorf("expected first payout preserved, got %+v", db.payouts[0])
	}
}

func TestIngestInfrastructureErrorAbortsBatch(t *testing.T) {
	svc, db := newTestService()
	infraErr := errors.New("connection reset")

	// A storage error during insert aborts the batch.
	db.insertErr = infraErr

	_, err := svc.Ingest(context.Background(), Request{
		EntityKind: EntityInfluencers,
		FileName:   "upload.csv",
		Data:       strings.NewReader("name\nMaya\nNoor\n"),
	})
	if !errors.Is(err, infraErr) {
		t.Fatalf("expected infra error, got %v", err)
	}
	if !strings.Contains(err.Error(), "row 1") {
		t.Errorf("expected failing row in error, got %v", err)
	}
	if len(db.influencers) != 0 {
		t.Errorf("expected rollback, got %d influencers", len(db.influencers))
	}
}

func TestIngestUnknownEntityKind(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Ingest(context.Background(), Request{
		EntityKind: "campaigns",
		FileName:   "upload.csv",
		Data:       strings.NewReader("name\n"),
	})
	if !errors.Is(err, ErrUnknownEntityKind) {
		t.Fatalf("expected ErrUnknownEntityKind, got %v", err)
	}
}

func TestIngestUnsupportedFileFormat(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Ingest(context.Background(), Request{
		EntityKind: EntityInfluencers,
		FileName:   "upload.xlsx",
		Data:       strings.NewReader("binary"),
	})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestIngestJSONUpload(t *testing.T) {
	svc, db := newTestService()
	seedInfluencer(db, "Maya Patel")

	report, err := svc.Ingest(context.Background(), Request{
		EntityKind: EntityTracking,
		FileName:   "upload.json",
		Data: strings.NewReader(`[
			{"influencer_name":"Maya Patel","user_id":"u1","product":"widget","date":"2024-03-10","orders":2,"revenue":10.10},
			{"influencer_name":"Maya Patel","user_id":"u2","product":"widget","date":"2024-03-10","orders":1,"revenue":10.20}
		]`),
	})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if report.CreatedCount != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if got := db.tracking[0].Revenue.String(); got != "10.1" {
		t.Errorf("expected exact decimal 10.1, got %s", got)
	}
}

func TestClearAll(t *testing.T) {
	svc, db := newTestService()
	inf := seedInfluencer(db, "Maya Patel")
	db.payouts = append(db.payouts, domain.NewPayout(inf.ID, "post", decimal.NewFromInt(5), 1, decimal.NewFromInt(5), time.Now()))

	if err := svc.ClearAll(context.Background()); err != nil {
		t.Fatalf("ClearAll returned error: %v", err)
	}
	if len(db.influencers) != 0 || len(db.payouts) != 0 {
		t.Errorf("expected empty dataset, got %d influencers %d payouts", len(db.influencers), len(db.payouts))
	}
}
