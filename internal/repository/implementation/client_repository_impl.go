package implementation

import (
	"context"
	"errors"
	"time"

	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/mapper"
	"chargeflow-be/internal/model"
	"chargeflow-be/internal/repository/contract"
	"chargeflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ClientMapper
}

func NewClientRepository(db *gorm.DB) contract.ClientRepository {
	return &ClientRepositoryImpl{
		db:     db,
		mapper: mapper.NewClientMapper(),
	}
}

func (r *ClientRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ClientRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Client, error) {
	var m model.Client
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ClientRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Client, error) {
	var models []*model.Client
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Client, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *ClientRepositoryImpl) FindIDs(ctx context.Context, specs ...specification.Specification) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Client{}), specs...)
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// MarkPaymentReceived rolls the due date forward one month from the previous
// due date, not from the payment date, so early payments do not shorten the
// billing cycle.
func (r *ClientRepositoryImpl) MarkPaymentReceived(ctx context.Context, id uuid.UUID, paidAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Client{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_payment_date": paidAt,
			"due_date":          gorm.Expr("due_date + INTERVAL '1 month'"),
		}).Error
}

func (r *ClientRepositoryImpl) UpdateRiskScore(ctx context.Context, id uuid.UUID, score int) error {
	return r.db.WithContext(ctx).
		Model(&model.Client{}).
		Where("id = ?", id).
		Update("risk_score", score).Error
}

func (r *ClientRepositoryImpl) PaymentHistory(ctx context.Context, id uuid.UUID) (*entity.PaymentHistory, error) {
	var row struct {
		TotalPayments int
		LatePayments  int
		AvgDelayDays  float64
		ClientAgeDays int
	}
	// The client_payment_history view owns the lateness arithmetic.
	err := r.db.WithContext(ctx).Raw(`
		SELECT total_payments, late_payments, avg_delay_days, client_age_days
		FROM client_payment_history
		WHERE client_id = ?`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &entity.PaymentHistory{
		TotalPayments: row.TotalPayments,
		LatePayments:  row.LatePayments,
		AvgDelayDays:  row.AvgDelayDays,
		ClientAgeDays: row.ClientAgeDays,
	}, nil
}

func (r *ClientRepositoryImpl) RiskStatistics(ctx context.Context, userID uuid.UUID) (*entity.RiskStatistics, error) {
	var row struct {
		TotalClients int
		AvgScore     float64
		LowRisk      int
		MediumRisk   int
		HighRisk     int
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_clients,
			COALESCE(AVG(risk_score), 0) AS avg_score,
			COUNT(*) FILTER (WHERE risk_score <= 30) AS low_risk,
			COUNT(*) FILTER (WHERE risk_score BETWEEN 31 AND 70) AS medium_risk,
			COUNT(*) FILTER (WHERE risk_score > 70) AS high_risk
		FROM clients
		WHERE user_id = ? AND status = 'active' AND deleted_at IS NULL`, userID).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &entity.RiskStatistics{
		TotalClients: row.TotalClients,
		AvgScore:     row.AvgScore,
		LowRisk:      row.LowRisk,
		MediumRisk:   row.MediumRisk,
		HighRisk:     row.HighRisk,
	}, nil
}

func (r *ClientRepositoryImpl) CreateInteraction(ctx context.Context, interaction *entity.ClientInteraction) error {
	m := r.mapper.InteractionToModel(interaction)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*interaction = *r.mapper.InteractionToEntity(m)
	return nil
}
