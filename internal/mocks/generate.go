// Package mocks provides mock implementations for testing hireloop services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the repository interfaces declared in internal/service. To regenerate after
// interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	repo := mocks.NewMockCandidateRepository(ctrl)
//	repo.EXPECT().GetByEmail(gomock.Any(), "a@b.c").Return(candidate, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=repository_mocks.go github.com/hireloop/hireloop/internal/service CandidateRepository,EmployerRepository,JobRepository,ApplicationRepository,BenchRepository,FileRepository
