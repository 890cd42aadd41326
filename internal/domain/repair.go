package domain

import "github.com/shopspring/decimal"

// Repair ticket statuses. There is no enforced ordering between COMPLETED
// and COLLECTED; a ticket may be collected straight from IN_PROGRESS.
const (
	RepairInProgress = "IN_PROGRESS"
	RepairCompleted  = "COMPLETED"
	RepairCollected  = "COLLECTED"
)

func ValidRepairStatus(s string) bool {
	switch s {
	case RepairInProgress, RepairCompleted, RepairCollected:
		return true
	}
	return false
}

type Repair struct {
	ID               string          `db:"id"`
	OwnerName        string          `db:"owner_name"`
	OwnerPhone       string          `db:"owner_phone"`
	PhoneName        string          `db:"phone_name"`
	PhoneModel       string          `db:"phone_model"`
	IssueDescription string          `db:"issue_description"`
	Charges          decimal.Decimal `db:"charges"`
	Status           string          `db:"status"`
	CreatedAt        string          `db:"created_at"`
	UpdatedAt        string          `db:"updated_at"`
	CollectedAt      *string         `db:"collected_at"`
}

// Revenue is recognized exactly once per repair, when it is first collected.
type Revenue struct {
	RepairID    string          `db:"repair_id"`
	OwnerName   string          `db:"owner_name"`
	Amount      decimal.Decimal `db:"amount"`
	CollectedAt string          `db:"collected_at"`
}
