package service

import (
	"context"
	"time"

	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/gateway/messaging"
	"chargeflow-be/internal/gateway/payment"
	"chargeflow-be/internal/repository/contract"
	"chargeflow-be/internal/repository/specification"
	"chargeflow-be/internal/repository/unitofwork"
	"chargeflow-be/pkg/events"

	"github.com/google/uuid"
)

// In-memory doubles for the store contracts. Status transitions emulate the
// database compare-and-set: a transition only wins when the row is still in
// the expected source state.

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type capturingPublisher struct {
	published []events.Event
}

func (p *capturingPublisher) Publish(_ context.Context, e events.Event) error {
	p.published = append(p.published, e)
	return nil
}

type fakePaymentGateway struct {
	results map[string]*payment.StatusResult
	errs    map[string]error
	err     error
	calls   []string
}

func (g *fakePaymentGateway) LookupStatus(_ context.Context, orderRef string) (*payment.StatusResult, error) {
	g.calls = append(g.calls, orderRef)
	if g.err != nil {
		return nil, g.err
	}
	if err, ok := g.errs[orderRef]; ok {
		return nil, err
	}
	if r, ok := g.results[orderRef]; ok {
		return r, nil
	}
	return &payment.StatusResult{Status: entity.PaymentStatusPending}, nil
}

type fakeMessagingGateway struct {
	connected  map[string]bool
	sendResult *messaging.SendResult
	sendErr    error
	sendCalls  int
}

func (g *fakeMessagingGateway) IsInstanceConnected(_ context.Context, instance string) (bool, error) {
	return g.connected[instance], nil
}

func (g *fakeMessagingGateway) SendText(_ context.Context, _, _, _ string) (*messaging.SendResult, error) {
	g.sendCalls++
	if g.sendErr != nil {
		return nil, g.sendErr
	}
	if g.sendResult != nil {
		return g.sendResult, nil
	}
	return &messaging.SendResult{AckCode: 200, VendorMessageId: "vendor-1"}, nil
}

type fakeNotifier struct {
	enqueued []*ConfirmationRequest
}

func (n *fakeNotifier) EnqueueConfirmation(_ context.Context, req *ConfirmationRequest) error {
	n.enqueued = append(n.enqueued, req)
	return nil
}

func (n *fakeNotifier) StartConsumer(context.Context) error { return nil }

// --- repositories ---

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok {
			return r.users[byID.ID], nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeClientRepo struct {
	clients      map[uuid.UUID]*entity.Client
	histories    map[uuid.UUID]*entity.PaymentHistory
	scores       map[uuid.UUID]int
	received     []uuid.UUID
	interactions []*entity.ClientInteraction
	historyErr   map[uuid.UUID]error
}

func (r *fakeClientRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Client, error) {
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok {
			return r.clients[byID.ID], nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.clients {
		if clientMatches(c, specs) {
			out = append(out, c)
		}
	}
	return out, nil
}

func clientMatches(c *entity.Client, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.UserOwnedBy:
			if c.UserId != sp.UserID {
				return false
			}
		case specification.StatusIs:
			if string(c.Status) != sp.Status {
				return false
			}
		case specification.ScoreBetween:
			if c.RiskScore < sp.Min || c.RiskScore > sp.Max {
				return false
			}
		}
	}
	return true
}

func (r *fakeClientRepo) FindIDs(ctx context.Context, specs ...specification.Specification) ([]uuid.UUID, error) {
	clients, _ := r.FindAll(ctx, specs...)
	ids := make([]uuid.UUID, 0, len(clients))
	for _, c := range clients {
		ids = append(ids, c.Id)
	}
	return ids, nil
}

func (r *fakeClientRepo) MarkPaymentReceived(_ context.Context, id uuid.UUID, paidAt time.Time) error {
	r.received = append(r.received, id)
	if c, ok := r.clients[id]; ok {
		c.LastPaymentDate = &paidAt
		c.DueDate = c.DueDate.AddDate(0, 1, 0)
	}
	return nil
}

func (r *fakeClientRepo) UpdateRiskScore(_ context.Context, id uuid.UUID, score int) error {
	if r.scores == nil {
		r.scores = make(map[uuid.UUID]int)
	}
	r.scores[id] = score
	if c, ok := r.clients[id]; ok {
		c.RiskScore = score
	}
	return nil
}

func (r *fakeClientRepo) PaymentHistory(_ context.Context, id uuid.UUID) (*entity.PaymentHistory, error) {
	if err, ok := r.historyErr[id]; ok {
		return nil, err
	}
	if h, ok := r.histories[id]; ok {
		return h, nil
	}
	return &entity.PaymentHistory{}, nil
}

func (r *fakeClientRepo) RiskStatistics(context.Context, uuid.UUID) (*entity.RiskStatistics, error) {
	return &entity.RiskStatistics{}, nil
}

func (r *fakeClientRepo) CreateInteraction(_ context.Context, interaction *entity.ClientInteraction) error {
	r.interactions = append(r.interactions, interaction)
	return nil
}

type fakePaymentRepo struct {
	payments []*entity.Payment
}

func (r *fakePaymentRepo) FindOne(context.Context, ...specification.Specification) (*entity.Payment, error) {
	return nil, nil
}

func (r *fakePaymentRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Payment, error) {
	return r.payments, nil
}

func (r *fakePaymentRepo) FindPending(_ context.Context, now time.Time) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.payments {
		if p.Status == entity.PaymentStatusPending && p.ExpiresAt.After(now) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) MarkExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, p := range r.payments {
		if p.Status == entity.PaymentStatusPending && !p.ExpiresAt.After(now) {
			p.Status = entity.PaymentStatusCancelled
			n++
		}
	}
	return n, nil
}

func (r *fakePaymentRepo) TransitionStatus(_ context.Context, id uuid.UUID, status entity.PaymentStatus, settledAt *time.Time) (bool, error) {
	for _, p := range r.payments {
		if p.Id == id {
			if p.Status != entity.PaymentStatusPending {
				return false, nil
			}
			p.Status = status
			p.SettledAt = settledAt
			return true, nil
		}
	}
	return false, nil
}

type fakeClientPaymentRepo struct {
	payments []*entity.ClientPayment
}

func (r *fakeClientPaymentRepo) FindOne(context.Context, ...specification.Specification) (*entity.ClientPayment, error) {
	return nil, nil
}

func (r *fakeClientPaymentRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.ClientPayment, error) {
	return r.payments, nil
}

func (r *fakeClientPaymentRepo) FindPending(_ context.Context, now time.Time) ([]*entity.ClientPayment, error) {
	var out []*entity.ClientPayment
	for _, p := range r.payments {
		if p.Status == entity.PaymentStatusPending && p.ExpiresAt.After(now) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeClientPaymentRepo) MarkExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, p := range r.payments {
		if p.Status == entity.PaymentStatusPending && !p.ExpiresAt.After(now) {
			p.Status = entity.PaymentStatusCancelled
			n++
		}
	}
	return n, nil
}

func (r *fakeClientPaymentRepo) TransitionStatus(_ context.Context, id uuid.UUID, status entity.PaymentStatus, settledAt *time.Time) (bool, error) {
	for _, p := range r.payments {
		if p.Id == id {
			if p.Status != entity.PaymentStatusPending {
				return false, nil
			}
			p.Status = status
			p.SettledAt = settledAt
			return true, nil
		}
	}
	return false, nil
}

type fakeMessageRepo struct {
	owners   *fakeUserRepo
	messages []*entity.ScheduledMessage
}

func (r *fakeMessageRepo) Create(_ context.Context, m *entity.ScheduledMessage) error {
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	r.messages = append(r.messages, m)
	return nil
}

func (r *fakeMessageRepo) FindOne(context.Context, ...specification.Specification) (*entity.ScheduledMessage, error) {
	return nil, nil
}

func (r *fakeMessageRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.ScheduledMessage, error) {
	return r.messages, nil
}

func (r *fakeMessageRepo) FindDue(_ context.Context, now time.Time) ([]*entity.ScheduledMessage, error) {
	var out []*entity.ScheduledMessage
	for _, m := range r.messages {
		if m.Status != entity.MessageStatusPending || m.ScheduledFor.After(now) {
			continue
		}
		owner, ok := r.owners.users[m.UserId]
		if !ok || !owner.WhatsappConnected {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMessageRepo) TransitionStatus(_ context.Context, id uuid.UUID, status entity.MessageStatus, sentAt *time.Time, errMsg string) (bool, error) {
	for _, m := range r.messages {
		if m.Id == id {
			if m.Status != entity.MessageStatusPending {
				return false, nil
			}
			m.Status = status
			m.SentAt = sentAt
			m.Error = errMsg
			return true, nil
		}
	}
	return false, nil
}

type fakeTemplateRepo struct {
	templates map[uuid.UUID]*entity.MessageTemplate
}

func (r *fakeTemplateRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.MessageTemplate, error) {
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok {
			return r.templates[byID.ID], nil
		}
	}
	return nil, nil
}

func (r *fakeTemplateRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.MessageTemplate, error) {
	return nil, nil
}

type fakeHistoryRepo struct {
	records []*entity.MessageHistory
}

func (r *fakeHistoryRepo) Create(_ context.Context, h *entity.MessageHistory) error {
	r.records = append(r.records, h)
	return nil
}

func (r *fakeHistoryRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.MessageHistory, error) {
	return r.records, nil
}

type fakeCampaignRepo struct {
	campaigns  map[uuid.UUID]*entity.Campaign
	recipients map[uuid.UUID]int
	sent       int
	delivered  int
	failed     int
}

func (r *fakeCampaignRepo) Create(_ context.Context, c *entity.Campaign) error {
	if c.Id == uuid.Nil {
		c.Id = uuid.New()
	}
	if r.campaigns == nil {
		r.campaigns = make(map[uuid.UUID]*entity.Campaign)
	}
	r.campaigns[c.Id] = c
	return nil
}

func (r *fakeCampaignRepo) Update(_ context.Context, c *entity.Campaign) error {
	r.campaigns[c.Id] = c
	return nil
}

func (r *fakeCampaignRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Campaign, error) {
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok {
			return r.campaigns[byID.ID], nil
		}
	}
	return nil, nil
}

func (r *fakeCampaignRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Campaign, error) {
	out := make([]*entity.Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCampaignRepo) TransitionStatus(_ context.Context, id uuid.UUID, from, to entity.CampaignStatus) (bool, error) {
	c, ok := r.campaigns[id]
	if !ok || c.Status != from {
		return false, nil
	}
	c.Status = to
	return true, nil
}

func (r *fakeCampaignRepo) SetRecipientCount(_ context.Context, id uuid.UUID, total int) error {
	if r.recipients == nil {
		r.recipients = make(map[uuid.UUID]int)
	}
	r.recipients[id] = total
	if c, ok := r.campaigns[id]; ok {
		c.TotalRecipients = total
	}
	return nil
}

func (r *fakeCampaignRepo) IncrementCounters(_ context.Context, id uuid.UUID, sent, delivered, failed int) error {
	r.sent += sent
	r.delivered += delivered
	r.failed += failed
	if c, ok := r.campaigns[id]; ok {
		c.SentCount += sent
		c.DeliveredCount += delivered
		c.FailedCount += failed
	}
	return nil
}

type fakeCampaignSendRepo struct {
	sends []*entity.CampaignSend
}

func (r *fakeCampaignSendRepo) CreateBatch(_ context.Context, sends []*entity.CampaignSend) error {
	for _, s := range sends {
		if s.Id == uuid.Nil {
			s.Id = uuid.New()
		}
	}
	r.sends = append(r.sends, sends...)
	return nil
}

func (r *fakeCampaignSendRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.CampaignSend, error) {
	var out []*entity.CampaignSend
	for _, s := range r.sends {
		if sendMatches(s, specs) {
			out = append(out, s)
		}
	}
	return out, nil
}

func sendMatches(s *entity.CampaignSend, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch f := sp.(type) {
		case specification.FilterBy:
			if f.Field == "campaign_id" && s.CampaignId != f.Value.(uuid.UUID) {
				return false
			}
		case specification.ClientOwnedBy:
			if s.ClientId != f.ClientID {
				return false
			}
		case specification.StatusIs:
			if string(s.Status) != f.Status {
				return false
			}
		}
	}
	return true
}

func (r *fakeCampaignSendRepo) CountByStatus(_ context.Context, campaignID uuid.UUID, status entity.MessageStatus) (int64, error) {
	var n int64
	for _, s := range r.sends {
		if s.CampaignId == campaignID && s.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeCampaignSendRepo) TransitionStatus(_ context.Context, id uuid.UUID, status entity.MessageStatus) (bool, error) {
	for _, s := range r.sends {
		if s.Id == id {
			if s.Status != entity.MessageStatusPending {
				return false, nil
			}
			s.Status = status
			return true, nil
		}
	}
	return false, nil
}

type fakeSubscriptionRepo struct {
	activated []uuid.UUID
	err       error
}

func (r *fakeSubscriptionRepo) FindOnePlan(context.Context, ...specification.Specification) (*entity.SubscriptionPlan, error) {
	return nil, nil
}

func (r *fakeSubscriptionRepo) FindAllPlans(context.Context, ...specification.Specification) ([]*entity.SubscriptionPlan, error) {
	return nil, nil
}

func (r *fakeSubscriptionRepo) FindOneSubscription(context.Context, ...specification.Specification) (*entity.UserSubscription, error) {
	return nil, nil
}

func (r *fakeSubscriptionRepo) FindAllSubscriptions(context.Context, ...specification.Specification) ([]*entity.UserSubscription, error) {
	return nil, nil
}

func (r *fakeSubscriptionRepo) Activate(_ context.Context, userID, _ uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	r.activated = append(r.activated, userID)
	return nil
}

type fakeSettingsRepo struct {
	values   map[string]string
	lastRuns map[string]time.Time
}

func (r *fakeSettingsRepo) Get(_ context.Context, key string) (string, error) {
	return r.values[key], nil
}

func (r *fakeSettingsRepo) Set(_ context.Context, key, value string) error {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	r.values[key] = value
	return nil
}

func (r *fakeSettingsRepo) SetCronLastRun(_ context.Context, job string, at time.Time) error {
	if r.lastRuns == nil {
		r.lastRuns = make(map[string]time.Time)
	}
	r.lastRuns[job] = at
	return nil
}

// --- unit of work ---

type fakeUow struct {
	users          *fakeUserRepo
	clients        *fakeClientRepo
	payments       *fakePaymentRepo
	clientPayments *fakeClientPaymentRepo
	messages       *fakeMessageRepo
	templates      *fakeTemplateRepo
	history        *fakeHistoryRepo
	campaigns      *fakeCampaignRepo
	campaignSends  *fakeCampaignSendRepo
	subscriptions  *fakeSubscriptionRepo
	settings       *fakeSettingsRepo

	begun      int
	committed  int
	rolledBack int
}

func newFakeUow() *fakeUow {
	users := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	return &fakeUow{
		users:          users,
		clients:        &fakeClientRepo{clients: make(map[uuid.UUID]*entity.Client), histories: make(map[uuid.UUID]*entity.PaymentHistory)},
		payments:       &fakePaymentRepo{},
		clientPayments: &fakeClientPaymentRepo{},
		messages:       &fakeMessageRepo{owners: users},
		templates:      &fakeTemplateRepo{templates: make(map[uuid.UUID]*entity.MessageTemplate)},
		history:        &fakeHistoryRepo{},
		campaigns:      &fakeCampaignRepo{campaigns: make(map[uuid.UUID]*entity.Campaign)},
		campaignSends:  &fakeCampaignSendRepo{},
		subscriptions:  &fakeSubscriptionRepo{},
		settings:       &fakeSettingsRepo{},
	}
}

func (u *fakeUow) Begin(context.Context) error { u.begun++; return nil }
func (u *fakeUow) Commit() error               { u.committed++; return nil }
func (u *fakeUow) Rollback() error             { u.rolledBack++; return nil }

func (u *fakeUow) UserRepository() contract.UserRepository             { return u.users }
func (u *fakeUow) ClientRepository() contract.ClientRepository         { return u.clients }
func (u *fakeUow) PaymentRepository() contract.PaymentRepository       { return u.payments }
func (u *fakeUow) ClientPaymentRepository() contract.ClientPaymentRepository {
	return u.clientPayments
}

func (u *fakeUow) ScheduledMessageRepository() contract.ScheduledMessageRepository {
	return u.messages
}
func (u *fakeUow) MessageTemplateRepository() contract.MessageTemplateRepository { return u.templates }
func (u *fakeUow) MessageHistoryRepository() contract.MessageHistoryRepository   { return u.history }

func (u *fakeUow) CampaignRepository() contract.CampaignRepository         { return u.campaigns }
func (u *fakeUow) CampaignSendRepository() contract.CampaignSendRepository { return u.campaignSends }

func (u *fakeUow) SubscriptionRepository() contract.SubscriptionRepository { return u.subscriptions }
func (u *fakeUow) AppSettingRepository() contract.AppSettingRepository     { return u.settings }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }
