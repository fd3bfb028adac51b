package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"voucher-hub/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCampaignRepository is a mock implementation of CampaignRepository.
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) Create(ctx context.Context, campaign *model.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignRepository) GetAll(ctx context.Context) ([]model.Campaign, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCampaignRepository) Exists(id uuid.UUID) bool {
	args := m.Called(id)
	return args.Bool(0)
}

// MockVoucherReleaser is a mock implementation of VoucherReleaser.
type MockVoucherReleaser struct {
	mock.Mock
}

func (m *MockVoucherReleaser) ReleaseCampaignVouchers(ctx context.Context, campaignID uuid.UUID) (int, error) {
	args := m.Called(ctx, campaignID)
	return args.Int(0), args.Error(1)
}

func validCampaignRequest() *model.CampaignRequest {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &model.CampaignRequest{
		Name:      "Spring Sale",
		ValidFrom: from,
		ValidTo:   from.AddDate(0, 1, 0),
		Amount:    decimal.NewFromInt(10),
		Currency:  "eur",
		Prefix:    "SPR",
	}
}

func TestCampaignService_Create_Success(t *testing.T) {
	mockRepo := new(MockCampaignRepository)
	mockReleaser := new(MockVoucherReleaser)
	svc := NewCampaignService(mockRepo, mockReleaser, zerolog.Nop())

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Campaign")).Return(nil)

	req := validCampaignRequest()
	req.Name = "  Spring Sale  "
	req.Prefix = " SPR "

	campaign, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, campaign)
	assert.NotEqual(t, uuid.Nil, campaign.ID)
	assert.Equal(t, "Spring Sale", campaign.Name)
	assert.Equal(t, "SPR", campaign.Prefix)
	assert.Equal(t, "EUR", campaign.Currency)
	assert.True(t, campaign.Amount.Equal(decimal.NewFromInt(10)))
	assert.False(t, campaign.CreatedAt.IsZero())
	mockRepo.AssertExpectations(t)
}

func TestCampaignService_Create_DuplicateName(t *testing.T) {
	mockRepo := new(MockCampaignRepository)
	svc := NewCampaignService(mockRepo, new(MockVoucherReleaser), zerolog.Nop())

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Campaign")).Return(model.ErrDuplicateName)

	campaign, err := svc.Create(context.Background(), validCampaignRequest())

	assert.Nil(t, campaign)
	assert.ErrorIs(t, err, model.ErrDuplicateName)
	mockRepo.AssertExpectations(t)
}

func TestCampaignService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *model.CampaignRequest)
		want   string
	}{
		{
			name:   "blank name",
			mutate: func(r *model.CampaignRequest) { r.Name = "   " },
			want:   "name",
		},
		{
			name:   "end before start",
			mutate: func(r *model.CampaignRequest) { r.ValidTo = r.ValidFrom.Add(-time.Hour) },
			want:   "validTo",
		},
		{
			name:   "end equals start",
			mutate: func(r *model.CampaignRequest) { r.ValidTo = r.ValidFrom },
			want:   "validTo",
		},
		{
			name:   "missing dates",
			mutate: func(r *model.CampaignRequest) { r.ValidFrom = time.Time{} },
			want:   "validFrom",
		},
		{
			name:   "zero amount",
			mutate: func(r *model.CampaignRequest) { r.Amount = decimal.Zero },
			want:   "amount",
		},
		{
			name:   "negative amount",
			mutate: func(r *model.CampaignRequest) { r.Amount = decimal.NewFromInt(-5) },
			want:   "amount",
		},
		{
			name:   "currency too long",
			mutate: func(r *model.CampaignRequest) { r.Currency = "EURO" },
			want:   "currency",
		},
		{
			name:   "currency with digits",
			mutate: func(r *model.CampaignRequest) { r.Currency = "E1R" },
			want:   "currency",
		},
		{
			name:   "short prefix",
			mutate: func(r *model.CampaignRequest) { r.Prefix = " AB " },
			want:   "prefix",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCampaignRepository)
			svc := NewCampaignService(mockRepo, new(MockVoucherReleaser), zerolog.Nop())

			req := validCampaignRequest()
			tt.mutate(req)

			campaign, err := svc.Create(context.Background(), req)

			assert.Nil(t, campaign)
			require.ErrorIs(t, err, model.ErrInvalidCampaign)
			assert.Contains(t, err.Error(), tt.want)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCampaignService_Create_NilRequest(t *testing.T) {
	svc := NewCampaignService(new(MockCampaignRepository), new(MockVoucherReleaser), zerolog.Nop())

	_, err := svc.Create(context.Background(), nil)

	assert.ErrorIs(t, err, model.ErrInvalidCampaign)
}

func TestCampaignService_List(t *testing.T) {
	mockRepo := new(MockCampaignRepository)
	svc := NewCampaignService(mockRepo, new(MockVoucherReleaser), zerolog.Nop())
	ctx := context.Background()

	expected := []model.Campaign{
		{ID: uuid.New(), Name: "A", Prefix: "AAA"},
		{ID: uuid.New(), Name: "B", Prefix: "BBB"},
	}
	mockRepo.On("GetAll", ctx).Return(expected, nil)

	campaigns, err := svc.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, expected, campaigns)
	mockRepo.AssertExpectations(t)
}

func TestCampaignService_List_Error(t *testing.T) {
	mockRepo := new(MockCampaignRepository)
	svc := NewCampaignService(mockRepo, new(MockVoucherReleaser), zerolog.Nop())
	ctx := context.Background()

	mockRepo.On("GetAll", ctx).Return(nil, errors.New("boom"))

	campaigns, err := svc.List(ctx)

	assert.Nil(t, campaigns)
	assert.ErrorContains(t, err, "failed to list campaigns")
}

func TestCampaignService_GetByID(t *testing.T) {
	mockRepo := new(MockCampaignRepository)
	svc := NewCampaignService(mockRepo, new(MockVoucherReleaser), zerolog.Nop())
	ctx := context.Background()

	known := &model.Campaign{ID: uuid.New(), Name: "Known"}
	unknown := uuid.New()
	mockRepo.On("GetByID", ctx, known.ID).Return(known, nil)
	mockRepo.On("GetByID", ctx, unknown).Return(nil, nil)

	got, err := svc.GetByID(ctx, known.ID)
	require.NoError(t, err)
	assert.Equal(t, known, got)

	got, err = svc.GetByID(ctx, unknown)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCampaignService_Delete_ReleasesVouchers(t *testing.T) {
	mockRepo := new(MockCampaignRepository)
	mockReleaser := new(MockVoucherReleaser)
	svc := NewCampaignService(mockRepo, mockReleaser, zerolog.Nop())
	id := uuid.New()

	var order []string
	mockRepo.On("Delete", mock.Anything, id).Return(true, nil).
		Run(func(args mock.Arguments) { order = append(order, "campaign") })
	mockReleaser.On("ReleaseCampaignVouchers", mock.Anything, id).Return(3, nil).
		Run(func(args mock.Arguments) { order = append(order, "vouchers") })

	existed, err := svc.Delete(context.Background(), id)

	require.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, []string{"campaign", "vouchers"}, order)
	mockRepo.AssertExpectations(t)
	mockReleaser.AssertExpectations(t)
}

func TestCampaignService_Delete_Unknown(t *testing.T) {
	mockRepo := new(MockCampaignRepository)
	mockReleaser := new(MockVoucherReleaser)
	svc := NewCampaignService(mockRepo, mockReleaser, zerolog.Nop())
	id := uuid.New()

	mockRepo.On("Delete", mock.Anything, id).Return(false, nil)
	mockReleaser.On("ReleaseCampaignVouchers", mock.Anything, id).Return(0, nil)

	existed, err := svc.Delete(context.Background(), id)

	require.NoError(t, err)
	assert.False(t, existed)
}

func TestCampaignService_Delete_ReleaseError(t *testing.T) {
	mockRepo := new(MockCampaignRepository)
	mockReleaser := new(MockVoucherReleaser)
	svc := NewCampaignService(mockRepo, mockReleaser, zerolog.Nop())
	id := uuid.New()

	mockRepo.On("Delete", mock.Anything, id).Return(true, nil)
	mockReleaser.On("ReleaseCampaignVouchers", mock.Anything, id).Return(0, errors.New("store unavailable"))

	existed, err := svc.Delete(context.Background(), id)

	assert.True(t, existed)
	assert.ErrorContains(t, err, "failed to release campaign vouchers")
}
