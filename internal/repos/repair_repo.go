package repos

import (
	"shoptrack/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type RepairRepo struct{ db *sqlx.DB }

func NewRepairRepo(db *sqlx.DB) *RepairRepo { return &RepairRepo{db: db} }

const repairColumns = `
  id, owner_name, owner_phone, phone_name, phone_model, issue_description,
  charges, status, created_at, COALESCE(updated_at,'') AS updated_at, collected_at`

func (r *RepairRepo) Get(id string) (domain.Repair, error) {
	var rep domain.Repair
	err := r.db.Get(&rep, `SELECT `+repairColumns+` FROM repairs WHERE id = ?`, id)
	return rep, err
}

// ListOpen lists tickets still in the shop (COLLECTED excluded), newest first.
func (r *RepairRepo) ListOpen() ([]domain.Repair, error) {
	var out []domain.Repair
	err := r.db.Select(&out, `
	  SELECT `+repairColumns+`
	  FROM repairs
	  WHERE status != ?
	  ORDER BY datetime(created_at) DESC
	`, domain.RepairCollected)
	return out, err
}

func (r *RepairRepo) Create(rep *domain.Repair) error {
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	if rep.Status == "" {
		rep.Status = domain.RepairInProgress
	}
	_, err := r.db.Exec(`
	  INSERT INTO repairs(id,owner_name,owner_phone,phone_name,phone_model,issue_description,charges,status)
	  VALUES(?,?,?,?,?,?,?,?)
	`, rep.ID, rep.OwnerName, rep.OwnerPhone, rep.PhoneName, rep.PhoneModel, rep.IssueDescription, rep.Charges, rep.Status)
	return err
}

// Save updates ticket fields and, when the ticket is entering COLLECTED,
// stamps collected_at (once) and records revenue exactly once via
// get-or-create — all in one transaction so a repeated save cannot produce
// a second revenue row or a torn ticket.
func (r *RepairRepo) Save(rep *domain.Repair) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  UPDATE repairs
	  SET owner_name=?, owner_phone=?, phone_name=?, phone_model=?,
	      issue_description=?, charges=?, status=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, rep.OwnerName, rep.OwnerPhone, rep.PhoneName, rep.PhoneModel,
		rep.IssueDescription, rep.Charges, rep.Status, rep.ID); err != nil {
		return err
	}

	if rep.Status == domain.RepairCollected {
		now := Now()
		if _, err := tx.Exec(`
		  UPDATE repairs SET collected_at = ? WHERE id = ? AND collected_at IS NULL
		`, now, rep.ID); err != nil {
			return err
		}
		// amount = charges at collection time; a row that already exists is left alone
		if _, err := tx.Exec(`
		  INSERT INTO revenues(repair_id, amount, collected_at)
		  SELECT id, charges, collected_at FROM repairs WHERE id = ?
		  ON CONFLICT(repair_id) DO NOTHING
		`, rep.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// CollectedBetween returns repairs collected inside [from, to].
func (r *RepairRepo) CollectedBetween(from, to string) ([]domain.Repair, error) {
	var out []domain.Repair
	err := r.db.Select(&out, `
	  SELECT `+repairColumns+`
	  FROM repairs
	  WHERE collected_at IS NOT NULL AND collected_at >= ? AND collected_at <= ?
	  ORDER BY datetime(collected_at) DESC
	`, from, to)
	return out, err
}

// ResetAll is the admin bulk action: every ticket back to IN_PROGRESS with
// its collection stamp cleared and its revenue row removed, atomically.
func (r *RepairRepo) ResetAll() error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM revenues`); err != nil {
		return err
	}
	if _, err := tx.Exec(`
	  UPDATE repairs SET status = ?, collected_at = NULL, updated_at = CURRENT_TIMESTAMP
	`, domain.RepairInProgress); err != nil {
		return err
	}
	return tx.Commit()
}
