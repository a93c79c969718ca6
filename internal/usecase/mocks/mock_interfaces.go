//	mockgen -destination=internal/usecase/mocks/mock_interfaces.go -package=mocks github.com/iho/networth/internal/usecase PriceSnapshotStore,PriceSource,Clock,IDGenerator,Recorder
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"
	time "time"

	domain "github.com/iho/networth/internal/domain"
	decimal "github.com/shopspring/decimal"
	gomock "go.uber.org/mock/gomock"
)

// MockPriceSnapshotStore is a mock of PriceSnapshotStore interface.
type MockPriceSnapshotStore struct {
	ctrl     *gomock.Controller
	recorder *MockPriceSnapshotStoreMockRecorder
	isgomock struct{}
}

// MockPriceSnapshotStoreMockRecorder is the mock recorder for MockPriceSnapshotStore.
type MockPriceSnapshotStoreMockRecorder struct {
	mock *MockPriceSnapshotStore
}

// NewMockPriceSnapshotStore creates a new mock instance.
func NewMockPriceSnapshotStore(ctrl *gomock.Controller) *MockPriceSnapshotStore {
	mock := &MockPriceSnapshotStore{ctrl: ctrl}
	mock.recorder = &MockPriceSnapshotStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPriceSnapshotStore) EXPECT() *MockPriceSnapshotStoreMockRecorder {
	return m.recorder
}

// Load mocks base method.
func (m *MockPriceSnapshotStore) Load(ctx context.Context) (domain.PriceSnapshot, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Load", ctx)
	ret0, _ := ret[0].(domain.PriceSnapshot)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Load indicates an expected call of Load.
func (mr *MockPriceSnapshotStoreMockRecorder) Load(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Load", reflect.TypeOf((*MockPriceSnapshotStore)(nil).Load), ctx)
}

// Save mocks base method.
func (m *MockPriceSnapshotStore) Save(ctx context.Context, snapshot domain.PriceSnapshot) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Save", ctx, snapshot)
	ret0, _ := ret[0].(error)
	return ret0
}

// Save indicates an expected call of Save.
func (mr *MockPriceSnapshotStoreMockRecorder) Save(ctx, snapshot any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Save", reflect.TypeOf((*MockPriceSnapshotStore)(nil).Save), ctx, snapshot)
}

// MockPriceSource is a mock of PriceSource interface.
type MockPriceSource struct {
	ctrl     *gomock.Controller
	recorder *MockPriceSourceMockRecorder
	isgomock struct{}
}

// MockPriceSourceMockRecorder is the mock recorder for MockPriceSource.
type MockPriceSourceMockRecorder struct {
	mock *MockPriceSource
}

// NewMockPriceSource creates a new mock instance.
func NewMockPriceSource(ctrl *gomock.Controller) *MockPriceSource {
	mock := &MockPriceSource{ctrl: ctrl}
	mock.recorder = &MockPriceSourceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPriceSource) EXPECT() *MockPriceSourceMockRecorder {
	return m.recorder
}

// FetchPrice mocks base method.
func (m *MockPriceSource) FetchPrice(ctx context.Context, lookupCode string) (decimal.Decimal, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FetchPrice", ctx, lookupCode)
	ret0, _ := ret[0].(decimal.Decimal)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// FetchPrice indicates an expected call of FetchPrice.
func (mr *MockPriceSourceMockRecorder) FetchPrice(ctx, lookupCode any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FetchPrice", reflect.TypeOf((*MockPriceSource)(nil).FetchPrice), ctx, lookupCode)
}

// Name mocks base method.
func (m *MockPriceSource) Name() string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Name")
	ret0, _ := ret[0].(string)
	return ret0
}

// Name indicates an expected call of Name.
func (mr *MockPriceSourceMockRecorder) Name() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Name", reflect.TypeOf((*MockPriceSource)(nil).Name))
}

// MockClock is a mock of Clock interface.
type MockClock struct {
	ctrl     *gomock.Controller
	recorder *MockClockMockRecorder
	isgomock struct{}
}

// MockClockMockRecorder is the mock recorder for MockClock.
type MockClockMockRecorder struct {
	mock *MockClock
}

// NewMockClock creates a new mock instance.
func NewMockClock(ctrl *gomock.Controller) *MockClock {
	mock := &MockClock{ctrl: ctrl}
	mock.recorder = &MockClockMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockClock) EXPECT() *MockClockMockRecorder {
	return m.recorder
}

// Now mocks base method.
func (m *MockClock) Now() time.Time {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Now")
	ret0, _ := ret[0].(time.Time)
	return ret0
}

// Now indicates an expected call of Now.
func (mr *MockClockMockRecorder) Now() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Now", reflect.TypeOf((*MockClock)(nil).Now))
}

// MockIDGenerator is a mock of IDGenerator interface.
type MockIDGenerator struct {
	ctrl     *gomock.Controller
	recorder *MockIDGeneratorMockRecorder
	isgomock struct{}
}

// MockIDGeneratorMockRecorder is the mock recorder for MockIDGenerator.
type MockIDGeneratorMockRecorder struct {
	mock *MockIDGenerator
}

// NewMockIDGenerator creates a new mock instance.
func NewMockIDGenerator(ctrl *gomock.Controller) *MockIDGenerator {
	mock := &MockIDGenerator{ctrl: ctrl}
	mock.recorder = &MockIDGeneratorMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockIDGenerator) EXPECT() *MockIDGeneratorMockRecorder {
	return m.recorder
}

// Generate mocks base method.
func (m *MockIDGenerator) Generate() string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Generate")
	ret0, _ := ret[0].(string)
	return ret0
}

// Generate indicates an expected call of Generate.
func (mr *MockIDGeneratorMockRecorder) Generate() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Generate", reflect.TypeOf((*MockIDGenerator)(nil).Generate))
}

// MockRecorder is a mock of Recorder interface.
type MockRecorder struct {
	ctrl     *gomock.Controller
	recorder *MockRecorderMockRecorder
	isgomock struct{}
}

// MockRecorderMockRecorder is the mock recorder for MockRecorder.
type MockRecorderMockRecorder struct {
	mock *MockRecorder
}

// NewMockRecorder creates a new mock instance.
func NewMockRecorder(ctrl *gomock.Controller) *MockRecorder {
	mock := &MockRecorder{ctrl: ctrl}
	mock.recorder = &MockRecorderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRecorder) EXPECT() *MockRecorderMockRecorder {
	return m.recorder
}

// HoldingsRebuilt mocks base method.
func (m *MockRecorder) HoldingsRebuilt() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "HoldingsRebuilt")
}

// HoldingsRebuilt indicates an expected call of HoldingsRebuilt.
func (mr *MockRecorderMockRecorder) HoldingsRebuilt() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HoldingsRebuilt", reflect.TypeOf((*MockRecorder)(nil).HoldingsRebuilt))
}

// NetWorth mocks base method.
func (m *MockRecorder) NetWorth(v float64) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "NetWorth", v)
}

// NetWorth indicates an expected call of NetWorth.
func (mr *MockRecorderMockRecorder) NetWorth(v any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NetWorth", reflect.TypeOf((*MockRecorder)(nil).NetWorth), v)
}

// PriceFetched mocks base method.
func (m *MockRecorder) PriceFetched(source, status string) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "PriceFetched", source, status)
}

// PriceFetched indicates an expected call of PriceFetched.
func (mr *MockRecorderMockRecorder) PriceFetched(source, status any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PriceFetched", reflect.TypeOf((*MockRecorder)(nil).PriceFetched), source, status)
}

// RefreshCompleted mocks base method.
func (m *MockRecorder) RefreshCompleted(d time.Duration) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "RefreshCompleted", d)
}

// RefreshCompleted indicates an expected call of RefreshCompleted.
func (mr *MockRecorderMockRecorder) RefreshCompleted(d any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RefreshCompleted", reflect.TypeOf((*MockRecorder)(nil).RefreshCompleted), d)
}

// RowsRejected mocks base method.
func (m *MockRecorder) RowsRejected(file string, n int) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "RowsRejected", file, n)
}

// RowsRejected indicates an expected call of RowsRejected.
func (mr *MockRecorderMockRecorder) RowsRejected(file, n any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RowsRejected", reflect.TypeOf((*MockRecorder)(nil).RowsRejected), file, n)
}
