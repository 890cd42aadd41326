package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"shoptrack/internal/domain"
	"shoptrack/internal/repos"
	"shoptrack/internal/services"
)

func newRepairs(db *sqlx.DB) *services.RepairService {
	return services.NewRepairService(repos.NewRepairRepo(db), repos.NewRevenueRepo(db))
}

func newTicket(charges string) domain.Repair {
	return domain.Repair{
		OwnerName:        "Jordan",
		OwnerPhone:       "0712345678",
		PhoneName:        "Pixel",
		PhoneModel:       "7a",
		IssueDescription: "cracked screen",
		Charges:          decimal.RequireFromString(charges),
	}
}

func TestCollectIsIdempotent(t *testing.T) {
	db := memdb(t)
	svc := newRepairs(db)

	rep := newTicket("50.00")
	if err := svc.Create(&rep); err != nil {
		t.Fatal(err)
	}

	rep.Status = domain.RepairCollected
	if err := svc.Update(&rep); err != nil {
		t.Fatal(err)
	}

	got, err := svc.Get(rep.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CollectedAt == nil || *got.CollectedAt == "" {
		t.Fatal("collected_at should be stamped on collection")
	}
	stamp := *got.CollectedAt

	rev, err := svc.Revenues.ByRepair(rep.ID)
	if err != nil {
		t.Fatal(err)
	}
	if want := decimal.RequireFromString("50.00"); !rev.Amount.Equal(want) {
		t.Fatalf("want revenue 50.00, got %s", rev.Amount)
	}
	if rev.CollectedAt != stamp {
		t.Fatalf("revenue stamp %q != repair stamp %q", rev.CollectedAt, stamp)
	}

	// saving the collected ticket again must not duplicate revenue or re-stamp
	if err := svc.Update(&rep); err != nil {
		t.Fatal(err)
	}
	n, err := svc.Revenues.CountForRepair(rep.ID)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("want exactly one revenue row, got %d", n)
	}
	got, _ = svc.Get(rep.ID)
	if *got.CollectedAt != stamp {
		t.Fatalf("collected_at moved on repeated save: %q -> %q", stamp, *got.CollectedAt)
	}
}

func TestCollectStraightFromInProgress(t *testing.T) {
	db := memdb(t)
	svc := newRepairs(db)

	rep := newTicket("25.50")
	if err := svc.Create(&rep); err != nil {
		t.Fatal(err)
	}
	if got, _ := svc.Get(rep.ID); got.Status != domain.RepairInProgress {
		t.Fatalf("new ticket should start IN_PROGRESS, got %s", got.Status)
	}

	// no COMPLETED step in between
	rep.Status = domain.RepairCollected
	if err := svc.Update(&rep); err != nil {
		t.Fatal(err)
	}
	n, _ := svc.Revenues.CountForRepair(rep.ID)
	if n != 1 {
		t.Fatalf("want one revenue row, got %d", n)
	}
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	db := memdb(t)
	svc := newRepairs(db)

	rep := newTicket("10.00")
	if err := svc.Create(&rep); err != nil {
		t.Fatal(err)
	}
	rep.Status = "LOST"
	if err := svc.Update(&rep); err != services.ErrBadStatus {
		t.Fatalf("want ErrBadStatus, got %v", err)
	}
}

func TestListOpenExcludesCollected(t *testing.T) {
	db := memdb(t)
	svc := newRepairs(db)

	open := newTicket("10.00")
	done := newTicket("20.00")
	if err := svc.Create(&open); err != nil {
		t.Fatal(err)
	}
	if err := svc.Create(&done); err != nil {
		t.Fatal(err)
	}
	done.Status = domain.RepairCollected
	if err := svc.Update(&done); err != nil {
		t.Fatal(err)
	}

	list, err := svc.ListOpen()
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range list {
		if r.ID == done.ID {
			t.Fatal("collected ticket still listed as open")
		}
	}
	found := false
	for _, r := range list {
		if r.ID == open.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("open ticket missing from the list")
	}
}

func TestResetAllClearsCollectionState(t *testing.T) {
	db := memdb(t)
	svc := newRepairs(db)

	rep := newTicket("42.00")
	if err := svc.Create(&rep); err != nil {
		t.Fatal(err)
	}
	rep.Status = domain.RepairCollected
	if err := svc.Update(&rep); err != nil {
		t.Fatal(err)
	}

	if err := svc.ResetAll(); err != nil {
		t.Fatal(err)
	}

	got, err := svc.Get(rep.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.RepairInProgress {
		t.Fatalf("want IN_PROGRESS after reset, got %s", got.Status)
	}
	if got.CollectedAt != nil {
		t.Fatalf("collected_at should be cleared, got %v", *got.CollectedAt)
	}
	n, _ := svc.Revenues.CountForRepair(rep.ID)
	if n != 0 {
		t.Fatalf("revenue rows should be deleted, got %d", n)
	}
}
