package repository

import (
	"github.com/guardline/guardline/internal/model"
	"github.com/jmoiron/sqlx"
)

type SosAlertRepository interface {
	Create(alert *model.SosAlert) error
	ByUser(userID string) ([]*model.SosAlert, error)
}

type sosAlertRepository struct {
	db *sqlx.DB
}

func NewSosAlertRepository(db *sqlx.DB) SosAlertRepository {
	return &sosAlertRepository{db: db}
}

func (r *sosAlertRepository) Create(alert *model.SosAlert) error {
	query := `INSERT INTO sos_alerts (id, user_id, location, message, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		alert.ID,
		alert.UserID,
		alert.Location,
		alert.Message,
		alert.Status,
		alert.CreatedAt,
	)
	return err
}

func (r *sosAlertRepository) ByUser(userID string) ([]*model.SosAlert, error) {
	var alerts []*model.SosAlert
	query := `SELECT * FROM sos_alerts WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&alerts, query, userID)
	if err != nil {
		return nil, err
	}

	return alerts, nil
}
