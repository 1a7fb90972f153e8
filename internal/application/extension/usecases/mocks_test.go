package usecases

import (
	"context"

	"centrex/internal/domain/callerid"
	"centrex/internal/domain/extension"
	"centrex/internal/shared/logger"
)

type mockExtensionRepository struct {
	SaveFunc                  func(ctx context.Context, ext *extension.Extension) error
	UpdateFunc                func(ctx context.Context, ext *extension.Extension) error
	DeleteFunc                func(ctx context.Context, extensionID uint) error
	FindByIDFunc              func(ctx context.Context, extensionID uint) (*extension.Extension, error)
	FindBySIDFunc             func(ctx context.Context, sid string) (*extension.Extension, error)
	ListByMerchantFunc        func(ctx context.Context, merchantNumber string, filter extension.Filter) ([]*extension.Extension, int64, error)
	ListNumbersByMerchantFunc func(ctx context.Context, merchantNumber string) ([]string, error)
}

func (m *mockExtensionRepository) Save(ctx context.Context, ext *extension.Extension) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, ext)
	}
	return nil
}

func (m *mockExtensionRepository) Update(ctx context.Context, ext *extension.Extension) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, ext)
	}
	return nil
}

func (m *mockExtensionRepository) Delete(ctx context.Context, extensionID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, extensionID)
	}
	return nil
}

func (m *mockExtensionRepository) FindByID(ctx context.Context, extensionID uint) (*extension.Extension, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, extensionID)
	}
	return nil, nil
}

func (m *mockExtensionRepository) FindBySID(ctx context.Context, sid string) (*extension.Extension, error) {
	if m.FindBySIDFunc != nil {
		return m.FindBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockExtensionRepository) ListByMerchant(ctx context.Context, merchantNumber string, filter extension.Filter) ([]*extension.Extension, int64, error) {
	if m.ListByMerchantFunc != nil {
		return m.ListByMerchantFunc(ctx, merchantNumber, filter)
	}
	return nil, 0, nil
}

func (m *mockExtensionRepository) ListNumbersByMerchant(ctx context.Context, merchantNumber string) ([]string, error) {
	if m.ListNumbersByMerchantFunc != nil {
		return m.ListNumbersByMerchantFunc(ctx, merchantNumber)
	}
	return nil, nil
}

type mockCallerIDRepository struct {
	SaveFunc           func(ctx context.Context, cid *callerid.CallerID) error
	UpdateFunc         func(ctx context.Context, cid *callerid.CallerID) error
	DeleteFunc         func(ctx context.Context, calleridID uint) error
	FindByIDFunc       func(ctx context.Context, calleridID uint) (*callerid.CallerID, error)
	FindBySIDFunc      func(ctx context.Context, sid string) (*callerid.CallerID, error)
	ListByMerchantFunc func(ctx context.Context, merchantNumber string) ([]*callerid.CallerID, error)
}

func (m *mockCallerIDRepository) Save(ctx context.Context, cid *callerid.CallerID) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, cid)
	}
	return nil
}

func (m *mockCallerIDRepository) Update(ctx context.Context, cid *callerid.CallerID) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, cid)
	}
	return nil
}

func (m *mockCallerIDRepository) Delete(ctx context.Context, calleridID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, calleridID)
	}
	return nil
}

func (m *mockCallerIDRepository) FindByID(ctx context.Context, calleridID uint) (*callerid.CallerID, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, calleridID)
	}
	return nil, nil
}

func (m *mockCallerIDRepository) FindBySID(ctx context.Context, sid string) (*callerid.CallerID, error) {
	if m.FindBySIDFunc != nil {
		return m.FindBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockCallerIDRepository) ListByMerchant(ctx context.Context, merchantNumber string) ([]*callerid.CallerID, error) {
	if m.ListByMerchantFunc != nil {
		return m.ListByMerchantFunc(ctx, merchantNumber)
	}
	return nil, nil
}

type mockSyncClient struct {
	CreateExtensionFunc func(ctx context.Context, code, name string, technology extension.Technology, secret string) error
	UpdateExtensionFunc func(ctx context.Context, code, name string, technology extension.Technology, secret string) error
	DeleteExtensionFunc func(ctx context.Context, code string) error
	TestConnectionFunc  func(ctx context.Context) error
}

func (m *mockSyncClient) CreateExtension(ctx context.Context, code, name string, technology extension.Technology, secret string) error {
	if m.CreateExtensionFunc != nil {
		return m.CreateExtensionFunc(ctx, code, name, technology, secret)
	}
	return nil
}

func (m *mockSyncClient) UpdateExtension(ctx context.Context, code, name string, technology extension.Technology, secret string) error {
	if m.UpdateExtensionFunc != nil {
		return m.UpdateExtensionFunc(ctx, code, name, technology, secret)
	}
	return nil
}

func (m *mockSyncClient) DeleteExtension(ctx context.Context, code string) error {
	if m.DeleteExtensionFunc != nil {
		return m.DeleteExtensionFunc(ctx, code)
	}
	return nil
}

func (m *mockSyncClient) TestConnection(ctx context.Context) error {
	if m.TestConnectionFunc != nil {
		return m.TestConnectionFunc(ctx)
	}
	return nil
}

type mockNotifier struct {
	NotifySyncFailureFunc func(merchantNumber, extensionCode, operation, reason string)
}

func (m *mockNotifier) NotifySyncFailure(merchantNumber, extensionCode, operation, reason string) {
	if m.NotifySyncFailureFunc != nil {
		m.NotifySyncFailureFunc(merchantNumber, extensionCode, operation, reason)
	}
}

type mockLogger struct {
	DebugFunc  func(msg string, args ...any)
	InfoFunc   func(msg string, args ...any)
	WarnFunc   func(msg string, args ...any)
	ErrorFunc  func(msg string, args ...any)
	DebugwFunc func(msg string, keysAndValues ...interface{})
	InfowFunc  func(msg string, keysAndValues ...interface{})
	WarnwFunc  func(msg string, keysAndValues ...interface{})
	ErrorwFunc func(msg string, keysAndValues ...interface{})
}

func (m *mockLogger) Debug(msg string, args ...any) {
	if m.DebugFunc != nil {
		m.DebugFunc(msg, args...)
	}
}

func (m *mockLogger) Info(msg string, args ...any) {
	if m.InfoFunc != nil {
		m.InfoFunc(msg, args...)
	}
}

func (m *mockLogger) Warn(msg string, args ...any) {
	if m.WarnFunc != nil {
		m.WarnFunc(msg, args...)
	}
}

func (m *mockLogger) Error(msg string, args ...any) {
	if m.ErrorFunc != nil {
		m.ErrorFunc(msg, args...)
	}
}

func (m *mockLogger) With(args ...any) logger.Interface {
	return m
}

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {
	if m.DebugwFunc != nil {
		m.DebugwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Infow(msg string, keysAndValues ...interface{}) {
	if m.InfowFunc != nil {
		m.InfowFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	if m.WarnwFunc != nil {
		m.WarnwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}
