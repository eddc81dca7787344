package notifications

import "github.com/efoncier/survey-lab/pkg/repository"

func scanNotification(s repository.Scanner) (*Notification, error) {
	var n Notification
	err := s.Scan(
		&n.ID,
		&n.UserID,
		&n.Title,
		&n.Message,
		&n.Severity,
		&n.Read,
		&n.ResultID,
		&n.ReportURL,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
