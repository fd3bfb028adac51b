package handler

import (
	"context"

	"voucher-hub/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCampaignService is a mock implementation of CampaignService.
type MockCampaignService struct {
	mock.Mock
}

func (m *MockCampaignService) Create(ctx context.Context, req *model.CampaignRequest) (*model.Campaign, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}

func (m *MockCampaignService) List(ctx context.Context) ([]model.Campaign, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Campaign), args.Error(1)
}

func (m *MockCampaignService) GetByID(ctx context.Context, id uuid.UUID) (*model.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}

func (m *MockCampaignService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockVoucherService is a mock implementation of VoucherService.
type MockVoucherService struct {
	mock.Mock
}

func (m *MockVoucherService) CreateVouchers(ctx context.Context, campaignID uuid.UUID, count int) ([]model.Voucher, error) {
	args := m.Called(ctx, campaignID, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Voucher), args.Error(1)
}

func (m *MockVoucherService) ListVouchers(ctx context.Context, campaignID uuid.UUID) ([]model.Voucher, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Voucher), args.Error(1)
}

func (m *MockVoucherService) ReleaseCampaignVouchers(ctx context.Context, campaignID uuid.UUID) (int, error) {
	args := m.Called(ctx, campaignID)
	return args.Int(0), args.Error(1)
}

// MockExporter is a mock implementation of Exporter.
type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) Export(ctx context.Context, campaignID uuid.UUID, vouchers []model.Voucher) (*model.ExportResponse, error) {
	args := m.Called(ctx, campaignID, vouchers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExportResponse), args.Error(1)
}
