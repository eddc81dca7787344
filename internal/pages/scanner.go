package pages

import "github.com/efoncier/survey-lab/pkg/repository"

func scanPage(s repository.Scanner) (*Page, error) {
	var p Page
	err := s.Scan(
		&p.ID,
		&p.DocumentID,
		&p.OwnerID,
		&p.SequenceNumber,
		&p.StorageKey,
		&p.Status,
		&p.ExtractionResult,
		&p.ZonesResult,
		&p.ReportKey,
		&p.Error,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
