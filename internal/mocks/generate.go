// Package mocks provides gomock implementations of the core repository and trigger interfaces.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	repo := mocks.NewMockScanJobRepository(ctrl)
//	repo.EXPECT().Count(gomock.Any(), "acme_db", gomock.Any()).Return(int64(3), nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=scan_job_repository_mock.go github.com/target/iris/internal/core ScanJobRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=tenant_repository_mock.go github.com/target/iris/internal/core TenantRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cache_repository_mock.go github.com/target/iris/internal/core CacheRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=restart_trigger_mock.go github.com/target/iris/internal/core RestartTrigger
