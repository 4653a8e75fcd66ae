package service

import (
	"context"
	"errors"
	"testing"

	"chargeflow-be/internal/entity"
	"chargeflow-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name    string
		history *entity.PaymentHistory
		want    int
	}{
		{
			name:    "nil history",
			history: nil,
			want:    0,
		},
		{
			name:    "no payments",
			history: &entity.PaymentHistory{ClientAgeDays: 365},
			want:    0,
		},
		{
			name: "perfect payer",
			history: &entity.PaymentHistory{
				TotalPayments: 12,
				LatePayments:  0,
				AvgDelayDays:  0,
				ClientAgeDays: 365,
			},
			want: 0,
		},
		{
			// 40% late (16) + delay 50 capped weighting (15) + frequency 30 (9) = 40
			name: "mixed record",
			history: &entity.PaymentHistory{
				TotalPayments: 10,
				LatePayments:  4,
				AvgDelayDays:  5,
				ClientAgeDays: 400,
			},
			want: 40,
		},
		{
			// avg delay term saturates at 100 before weighting
			name: "extreme delays capped",
			history: &entity.PaymentHistory{
				TotalPayments: 10,
				LatePayments:  0,
				AvgDelayDays:  50,
				ClientAgeDays: 365,
			},
			want: 30,
		},
		{
			// a client younger than a month counts as one month old
			name: "young client minimum age",
			history: &entity.PaymentHistory{
				TotalPayments: 2,
				LatePayments:  1,
				AvgDelayDays:  2,
				ClientAgeDays: 10,
			},
			// 50*0.4 + 20*0.3 + 100*0.3 = 56
			want: 56,
		},
		{
			// the frequency term is unbounded before the final clamp
			name: "frequency overflow clamped at 100",
			history: &entity.PaymentHistory{
				TotalPayments: 8,
				LatePayments:  8,
				AvgDelayDays:  30,
				ClientAgeDays: 30,
			},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, computeScore(tt.history))
		})
	}
}

func TestScorePersistsResult(t *testing.T) {
	uow := newFakeUow()
	userID := uuid.New()
	clientID := uuid.New()
	uow.clients.clients[clientID] = &entity.Client{Id: clientID, UserId: userID}
	uow.clients.histories[clientID] = &entity.PaymentHistory{
		TotalPayments: 10,
		LatePayments:  4,
		AvgDelayDays:  5,
		ClientAgeDays: 400,
	}
	svc := NewRiskService(&fakeFactory{uow: uow}, nil, nopLogger{})

	score, err := svc.Score(context.Background(), userID, clientID)

	assert.NoError(t, err)
	assert.Equal(t, 40, score)
	assert.Equal(t, 40, uow.clients.scores[clientID])
}

func TestScoreUnknownClient(t *testing.T) {
	uow := newFakeUow()
	svc := NewRiskService(&fakeFactory{uow: uow}, nil, nopLogger{})

	_, err := svc.Score(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestScoreAllIsolatesFailures(t *testing.T) {
	uow := newFakeUow()
	userID := uuid.New()
	good := uuid.New()
	bad := uuid.New()
	uow.clients.clients[good] = &entity.Client{Id: good, UserId: userID}
	uow.clients.clients[bad] = &entity.Client{Id: bad, UserId: userID}
	uow.clients.histories[good] = &entity.PaymentHistory{
		TotalPayments: 4,
		LatePayments:  2,
		AvgDelayDays:  3,
		ClientAgeDays: 120,
	}
	uow.clients.historyErr = map[uuid.UUID]error{bad: errors.New("aggregate timeout")}

	publisher := &capturingPublisher{}
	svc := NewRiskService(&fakeFactory{uow: uow}, publisher, nopLogger{})

	updated, err := svc.ScoreAll(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, 1, updated)
	assert.Contains(t, uow.clients.scores, good)
	assert.NotContains(t, uow.clients.scores, bad)

	if assert.Len(t, publisher.published, 1) {
		e := publisher.published[0]
		assert.Equal(t, events.TypeScoreBatchCompleted, e.EventType())
		assert.Equal(t, 1, e.Payload()["scored"])
		assert.Equal(t, 1, e.Payload()["failed"])
	}
}

func TestScoreBatchCoversAllUsers(t *testing.T) {
	uow := newFakeUow()
	userA := uuid.New()
	userB := uuid.New()
	uow.users.users[userA] = &entity.User{Id: userA}
	uow.users.users[userB] = &entity.User{Id: userB}

	clientA := uuid.New()
	clientB := uuid.New()
	uow.clients.clients[clientA] = &entity.Client{Id: clientA, UserId: userA}
	uow.clients.clients[clientB] = &entity.Client{Id: clientB, UserId: userB}

	svc := NewRiskService(&fakeFactory{uow: uow}, nil, nopLogger{})

	report, err := svc.ScoreBatch(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, report.Checked)
	assert.Equal(t, 2, report.Updated)
	assert.Contains(t, uow.settings.lastRuns, "risk_score")
}
