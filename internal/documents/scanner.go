package documents

import "github.com/efoncier/survey-lab/pkg/repository"

func scanDocument(s repository.Scanner) (*Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.OwnerID,
		&d.Filename,
		&d.ContentType,
		&d.SizeBytes,
		&d.PageCount,
		&d.StorageKey,
		&d.Status,
		&d.Error,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
