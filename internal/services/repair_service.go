package services

import (
	"errors"

	"shoptrack/internal/domain"
	"shoptrack/internal/repos"
)

var ErrBadStatus = errors.New("unknown repair status")

type RepairService struct {
	Repairs  *repos.RepairRepo
	Revenues *repos.RevenueRepo
}

func NewRepairService(repairs *repos.RepairRepo, revenues *repos.RevenueRepo) *RepairService {
	return &RepairService{Repairs: repairs, Revenues: revenues}
}

func (s *RepairService) Create(rep *domain.Repair) error {
	if rep.Status == "" {
		rep.Status = domain.RepairInProgress
	}
	if !domain.ValidRepairStatus(rep.Status) {
		return ErrBadStatus
	}
	if err := s.Repairs.Create(rep); err != nil {
		return err
	}
	// A ticket may be created already collected (walk-in fix handed straight
	// back); run the save path so collection side effects apply.
	if rep.Status == domain.RepairCollected {
		return s.Repairs.Save(rep)
	}
	return nil
}

// Update saves the ticket; entering COLLECTED stamps collected_at and
// recognizes revenue exactly once (idempotent across repeated saves).
func (s *RepairService) Update(rep *domain.Repair) error {
	if !domain.ValidRepairStatus(rep.Status) {
		return ErrBadStatus
	}
	return s.Repairs.Save(rep)
}

func (s *RepairService) ListOpen() ([]domain.Repair, error) {
	return s.Repairs.ListOpen()
}

func (s *RepairService) Get(id string) (domain.Repair, error) {
	return s.Repairs.Get(id)
}

// ResetAll forces every ticket back to IN_PROGRESS and drops revenue rows.
func (s *RepairService) ResetAll() error {
	return s.Repairs.ResetAll()
}
